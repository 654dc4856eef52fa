// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/sha256"
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/fixtures"
	"github.com/mutualcredit/transactord/rpc/certificate"
)

func TestMakeAndGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "certificate")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")

	err = certificate.MakeSelfSigned("test", certificateFile, keyFile, nil)
	assert.Nil(t, err, "make")

	err = certificate.MakeSelfSigned("test", certificateFile, keyFile, nil)
	assert.Equal(t, fault.CertificateFileAlreadyExists, err, "overwrite")

	cer, _ := ioutil.ReadFile(certificateFile)
	key, _ := ioutil.ReadFile(keyFile)

	tlsConfig, fingerprint, err := certificate.Get(logger.New("test"), "test", string(cer), string(key))
	assert.Nil(t, err, "get")

	pair, _ := tls.X509KeyPair(cer, key)
	assert.Equal(t, sha256.Sum256(pair.Certificate[0]), [32]byte(fingerprint), "fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "config")

	_, _, err = certificate.Get(logger.New("test"), "test", string(key), string(cer))
	assert.NotNil(t, err, "swapped pem")
}
