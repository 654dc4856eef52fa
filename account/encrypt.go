// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/mutualcredit/transactord/fault"
)

const (
	saltLength  = 32
	nonceLength = 24
	keyLength   = 32
)

// EncryptedKey - passphrase protected private key as stored in the identity file
type EncryptedKey struct {
	Salt       string `json:"salt"`
	Ciphertext string `json:"ciphertext"`
}

// Encrypt - protect the private key with a passphrase
func (privateKey *PrivateKey) Encrypt(passphrase string) (*EncryptedKey, error) {
	if "" == passphrase {
		return nil, fault.MissingParameters
	}

	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); nil != err {
		return nil, err
	}

	key, err := generateKey(passphrase, salt)
	if nil != err {
		return nil, err
	}

	var nonce [nonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); nil != err {
		return nil, err
	}

	sealed := secretbox.Seal(nonce[:], privateKey.Bytes(), &nonce, key)

	encrypted := &EncryptedKey{
		Salt:       hex.EncodeToString(salt),
		Ciphertext: hex.EncodeToString(sealed),
	}
	return encrypted, nil
}

// Decrypt - recover the private key, a wrong passphrase fails authentication
func (encrypted *EncryptedKey) Decrypt(passphrase string) (*PrivateKey, error) {
	salt, err := hex.DecodeString(encrypted.Salt)
	if nil != err || saltLength != len(salt) {
		return nil, fault.CannotDecodePrivateKey
	}
	sealed, err := hex.DecodeString(encrypted.Ciphertext)
	if nil != err || len(sealed) <= nonceLength+secretbox.Overhead {
		return nil, fault.CannotDecodePrivateKey
	}

	key, err := generateKey(passphrase, salt)
	if nil != err {
		return nil, err
	}

	var nonce [nonceLength]byte
	copy(nonce[:], sealed[:nonceLength])

	plain, ok := secretbox.Open(nil, sealed[nonceLength:], &nonce, key)
	if !ok {
		return nil, fault.WrongPassphrase
	}
	return PrivateKeyFromBytes(plain)
}

func generateKey(passphrase string, salt []byte) (*[keyLength]byte, error) {
	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     keyLength,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}

	hash, err := argon2.Hash(ctx, []byte(passphrase), salt)
	if nil != err {
		return nil, err
	}

	var key [keyLength]byte
	copy(key[:], hash)
	return &key, nil
}
