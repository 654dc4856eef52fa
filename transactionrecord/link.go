// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/mutualcredit/transactord/fault"
)

// LinkLength - bytes in a link
const LinkLength = 32

// Link - SHA3-256 of a packed record, the record's reference hash
type Link [LinkLength]byte

// MakeLink - create a link for a packed record
func (record Packed) MakeLink() Link {
	return Link(sha3.Sum256(record))
}

// LinkFromBytes - convert and validate a byte slice
func LinkFromBytes(buffer []byte) (Link, error) {
	link := Link{}
	if LinkLength != len(buffer) {
		return link, fault.InvalidLink
	}
	copy(link[:], buffer)
	return link, nil
}

// LinkFromHexString - convert and validate hex text
func LinkFromHexString(s string) (Link, error) {
	link := Link{}
	err := link.UnmarshalText([]byte(s))
	return link, err
}

// Bytes - link as a byte slice
func (link Link) Bytes() []byte {
	return link[:]
}

// IsZero - the unset link
func (link Link) IsZero() bool {
	return Link{} == link
}

// String - hex form for %s
func (link Link) String() string {
	return hex.EncodeToString(link[:])
}

// GoString - for %#v
func (link Link) GoString() string {
	return "<link:" + hex.EncodeToString(link[:]) + ">"
}

// MarshalText - convert link to hex text
func (link Link) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(LinkLength))
	hex.Encode(buffer, link[:])
	return buffer, nil
}

// UnmarshalText - convert hex text to a link
func (link *Link) UnmarshalText(s []byte) error {
	if hex.EncodedLen(LinkLength) != len(s) {
		return fault.InvalidLink
	}
	byteCount, err := hex.Decode(link[:], s)
	if nil != err || LinkLength != byteCount {
		return fault.InvalidLink
	}
	return nil
}
