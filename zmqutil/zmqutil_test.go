// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/zmqutil"
)

func TestKeyPairFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "zmqutil")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	publicFile := filepath.Join(dir, "peer.public")
	privateFile := filepath.Join(dir, "peer.private")

	pair, err := zmqutil.NewKeyPair()
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	assert.Equal(t, 32, len(pair.Public), "public size")
	assert.Equal(t, 32, len(pair.Private), "private size")

	assert.Nil(t, pair.Write(publicFile, privateFile), "write")
	assert.Equal(t, fault.KeyFileAlreadyExists, pair.Write(publicFile, privateFile), "overwrite")

	text, _ := ioutil.ReadFile(publicFile)
	public, err := zmqutil.ReadPublicKey(string(text))
	assert.Nil(t, err, "read public")
	assert.Equal(t, pair.Public, public, "public key")

	_, err = zmqutil.ReadPrivateKey(string(text))
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public as private")

	text, _ = ioutil.ReadFile(privateFile)
	private, err := zmqutil.ReadPrivateKey(string(text))
	assert.Nil(t, err, "read private")
	assert.Equal(t, pair.Private, private, "private key")
}

func TestParseKey(t *testing.T) {
	key := bytes.Repeat([]byte{0xab}, 32)
	text := "PUBLIC:" + "ab" + string(bytes.Repeat([]byte("ab"), 31))

	parsed, private, err := zmqutil.ParseKey("  " + text + "\n")
	assert.Nil(t, err, "parse")
	assert.False(t, private, "private")
	assert.Equal(t, key, parsed, "key")

	_, _, err = zmqutil.ParseKey("PUBLIC:abcd")
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short key")

	_, _, err = zmqutil.ParseKey("PRIVATE:zz")
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "bad hex")

	_, _, err = zmqutil.ParseKey("SECRET:" + text[7:])
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "bad tag")
}

func TestClientArguments(t *testing.T) {
	key := make([]byte, 32)

	_, err := zmqutil.NewClient(key[:5], key, time.Second)
	assert.Equal(t, fault.InvalidKeyLength, err, "short private key")

	_, err = zmqutil.NewClient(key, key, 0)
	assert.Equal(t, fault.InvalidTimeout, err, "zero timeout")

	client, err := zmqutil.NewClient(key, key, time.Second)
	assert.Nil(t, err, "new client")
	assert.False(t, client.IsConnected(), "connected")

	_, err = client.Request(context.Background(), []byte("ping"))
	assert.Equal(t, fault.NotConnected, err, "request before connect")

	err = client.Connect("not-an-address", key)
	assert.Equal(t, fault.InvalidIPAddress, err, "bad address")
	assert.Nil(t, client.Close(), "close")
}

func TestAuthoriseArguments(t *testing.T) {
	err := zmqutil.Authorise("", nil)
	assert.Equal(t, fault.MissingParameters, err, "no domain")

	keys := [][]byte{
		bytes.Repeat([]byte{1}, 32),
		bytes.Repeat([]byte{2}, 31),
	}
	err = zmqutil.Authorise("transactor-test", keys)
	assert.Equal(t, fault.InvalidKeyLength, err, "short client key")
}
