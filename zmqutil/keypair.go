// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	zmq "github.com/pebbe/zmq4"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/util"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
	keySize       = 32
)

// KeyPair - CURVE keys as raw 32 byte values
type KeyPair struct {
	Public  []byte
	Private []byte
}

// NewKeyPair - generate a fresh CURVE key pair
func NewKeyPair() (*KeyPair, error) {
	// zmq returns keys in Z85 (ZeroMQ Base-85 Encoding)
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		Public:  []byte(zmq.Z85decode(publicKey)),
		Private: []byte(zmq.Z85decode(privateKey)),
	}, nil
}

// Write - save the keys to separate tagged hex files
//
// existing files are never overwritten
func (pair *KeyPair) Write(publicKeyFileName string, privateKeyFileName string) error {
	if util.Exists(publicKeyFileName) || util.Exists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	publicText := taggedPublic + hex.EncodeToString(pair.Public) + "\n"
	privateText := taggedPrivate + hex.EncodeToString(pair.Private) + "\n"

	err := ioutil.WriteFile(publicKeyFileName, []byte(publicText), 0666)
	if nil != err {
		return err
	}

	err = ioutil.WriteFile(privateKeyFileName, []byte(privateText), 0600)
	if nil != err {
		_ = os.Remove(publicKeyFileName)
		return err
	}
	return nil
}

// ReadPublicKey - decode tagged public key text
func ReadPublicKey(text string) ([]byte, error) {
	key, private, err := ParseKey(text)
	if nil != err {
		return nil, err
	}
	if private {
		return nil, fault.InvalidPublicKeyFile
	}
	return key, nil
}

// ReadPrivateKey - decode tagged private key text
func ReadPrivateKey(text string) ([]byte, error) {
	key, private, err := ParseKey(text)
	if nil != err {
		return nil, err
	}
	if !private {
		return nil, fault.InvalidPrivateKeyFile
	}
	return key, nil
}

// ParseKey - decode either kind of tagged key, reporting which it was
func ParseKey(text string) ([]byte, bool, error) {
	s := strings.TrimSpace(text)

	private := false
	switch {
	case strings.HasPrefix(s, taggedPrivate):
		private = true
		s = s[len(taggedPrivate):]
	case strings.HasPrefix(s, taggedPublic):
		s = s[len(taggedPublic):]
	default:
		return nil, false, fault.InvalidPublicKeyFile
	}

	key, err := hex.DecodeString(s)
	if nil != err || keySize != len(key) {
		if private {
			return nil, false, fault.InvalidPrivateKeyFile
		}
		return nil, false, fault.InvalidPublicKeyFile
	}
	return key, private, nil
}
