// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintBytes - SHA256 of a DER certificate
type FingerprintBytes [sha256.Size]byte

// Fingerprint - same digest as:
//
//	openssl x509 -noout -in transactord.crt -fingerprint -sha256
func Fingerprint(certificate []byte) FingerprintBytes {
	return sha256.Sum256(certificate)
}

func (f FingerprintBytes) String() string {
	return hex.EncodeToString(f[:])
}
