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

// Entry - an admitted record with the header it was admitted under
type Entry struct {
	Link        transactionrecord.Link
	Header      *Header
	Packed      transactionrecord.Packed
	Transaction transactionrecord.Transaction
}

// Reader - read access to admitted entries
type Reader interface {
	Get(link transactionrecord.Link) (*Entry, error)
	Query(author *account.Account, kinds ...transactionrecord.TagType) ([]*Entry, error)
	Package(author *account.Account) (*Package, error)
	Head(author *account.Account) (uint64, transactionrecord.Link)
}

// Validator - admission hook run before anything is written
type Validator interface {

	// the author's own chain is available through the reader
	ValidateCommit(reader Reader, header *Header, packed transactionrecord.Packed) error

	// as ValidateCommit for a record that may still lack its countersignature
	ValidateDraft(reader Reader, header *Header, packed transactionrecord.Packed) error

	// a foreign record arrives with its author's prior chain, the reader
	// is the receiving store and resolves the records it refers to
	ValidatePackage(reader Reader, pkg *Package, header *Header, packed transactionrecord.Packed) error
}

// unpack a record that must occupy the whole buffer
func unpackRecord(packed transactionrecord.Packed) (transactionrecord.Transaction, error) {
	tx, n, err := packed.Unpack()
	if nil != err {
		return nil, err
	}
	if n != len(packed) {
		return nil, fault.NotTransactionPack
	}
	return tx, nil
}

// NewEntry - entry from a header and its record, checking that they match
func NewEntry(header *Header, packed transactionrecord.Packed) (*Entry, error) {
	tx, err := unpackRecord(packed)
	if nil != err {
		return nil, err
	}
	link := packed.MakeLink()
	if link != header.EntryLink || tx.Tag() != header.Kind {
		return nil, fault.HeaderIsInvalid
	}
	entry := &Entry{
		Link:        link,
		Header:      header,
		Packed:      packed,
		Transaction: tx,
	}
	return entry, nil
}
