// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// Package - an author's complete prior chain, in sequence order
type Package struct {
	Author  *account.Account           `json:"author"`
	Headers []*Header                  `json:"headers"`
	Entries []transactionrecord.Packed `json:"entries"`
}

// Verify - check the package is one intact chain by its author
//
// returns the entries in sequence order
func (pkg *Package) Verify() ([]*Entry, error) {
	if nil == pkg || nil == pkg.Author || len(pkg.Headers) != len(pkg.Entries) {
		return nil, fault.InvalidPackage
	}

	entries := make([]*Entry, 0, len(pkg.Headers))
	previous := transactionrecord.Link{}

	for i, header := range pkg.Headers {
		if nil == header || !pkg.Author.Equal(header.Author) {
			return nil, fault.InvalidPackage
		}
		if uint64(i) != header.Sequence || previous != header.Previous {
			return nil, fault.InvalidPackage
		}

		link, err := header.Link()
		if nil != err {
			return nil, fault.InvalidPackage
		}

		entry, err := NewEntry(header, pkg.Entries[i])
		if nil != err {
			return nil, fault.InvalidPackage
		}
		entries = append(entries, entry)
		previous = link
	}
	return entries, nil
}

// Follows - the header is the next one in the package's chain
func (pkg *Package) Follows(header *Header) error {
	if nil == header || !pkg.Author.Equal(header.Author) {
		return fault.WrongChainOwner
	}
	if uint64(len(pkg.Headers)) != header.Sequence {
		return fault.WrongSequence
	}

	previous := transactionrecord.Link{}
	if n := len(pkg.Headers); n > 0 {
		link, err := pkg.Headers[n-1].Link()
		if nil != err {
			return fault.InvalidPackage
		}
		previous = link
	}
	if previous != header.Previous {
		return fault.WrongSequence
	}
	return nil
}

// Prefix - the package truncated to its first n records
func (pkg *Package) Prefix(n uint64) *Package {
	if n > uint64(len(pkg.Headers)) {
		n = uint64(len(pkg.Headers))
	}
	return &Package{
		Author:  pkg.Author,
		Headers: pkg.Headers[:n],
		Entries: pkg.Entries[:n],
	}
}
