// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
)

// identityFile - on disk form of the node identity
//
// exactly one of the key fields is present
type identityFile struct {
	Account    *account.Account      `json:"account"`
	PrivateKey *account.PrivateKey   `json:"private_key,omitempty"`
	Encrypted  *account.EncryptedKey `json:"encrypted,omitempty"`
}

// create a new identity file, optionally protected by a passphrase
func makeIdentity(fileName string, passphrase string, test bool) (*account.Account, error) {
	if _, err := os.Stat(fileName); nil == err {
		return nil, fault.KeyFileAlreadyExists
	}

	key, err := account.NewPrivateKey(test)
	if nil != err {
		return nil, err
	}

	f := identityFile{
		Account: key.Account(),
	}
	if "" == passphrase {
		f.PrivateKey = key
	} else {
		f.Encrypted, err = key.Encrypt(passphrase)
		if nil != err {
			return nil, err
		}
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if nil != err {
		return nil, err
	}
	if err := ioutil.WriteFile(fileName, append(data, '\n'), 0600); nil != err {
		_ = os.Remove(fileName)
		return nil, err
	}
	return f.Account, nil
}

// read the identity file and recover the private key
func readIdentity(fileName string, passphrase string) (*account.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	var f identityFile
	if err := json.Unmarshal(data, &f); nil != err {
		return nil, fault.InvalidPrivateKeyFile
	}

	var key *account.PrivateKey
	switch {
	case nil != f.PrivateKey:
		key = f.PrivateKey
	case nil != f.Encrypted:
		key, err = f.Encrypted.Decrypt(passphrase)
		if nil != err {
			return nil, err
		}
	default:
		return nil, fault.InvalidPrivateKeyFile
	}

	if nil != f.Account && !f.Account.Equal(key.Account()) {
		return nil, fault.InvalidPrivateKeyFile
	}
	return key, nil
}
