// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS setup for the RPC listener
package certificate

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/util"
)

const validity = 10 * 365 * 24 * time.Hour

// Get - TLS configuration from PEM certificate and key text, with the
// certificate fingerprint
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, util.FingerprintBytes, error) {
	var fin util.FingerprintBytes

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %s", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = util.Fingerprint(keyPair.Certificate[0])
	return tlsConfiguration, fin, nil
}

// MakeSelfSigned - write a new self signed certificate and key
//
// existing files are never overwritten
func MakeSelfSigned(name string, certificateFileName string, privateKeyFileName string, extraHosts []string) error {

	if util.Exists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}
	if util.Exists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "transactord self signed cert for: " + name
	validUntil := time.Now().Add(validity)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, false, extraHosts)
	if nil != err {
		return err
	}

	err = ioutil.WriteFile(certificateFileName, cert, 0666)
	if nil != err {
		return err
	}

	err = ioutil.WriteFile(privateKeyFileName, key, 0600)
	if nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}
	return nil
}
