// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/storage"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// Store - per author append-only chains over the storage pools
type Store struct {
	sync.RWMutex

	log       *logger.L
	database  *storage.Database
	validator Validator
}

// New - create a store, every write passes through the validator
func New(database *storage.Database, validator Validator) *Store {
	return &Store{
		log:       logger.New("chain"),
		database:  database,
		validator: validator,
	}
}

// view - reader used while the store lock is already held
type view struct {
	s *Store
}

func (v view) Get(link transactionrecord.Link) (*Entry, error) {
	return v.s.get(link)
}

func (v view) Query(author *account.Account, kinds ...transactionrecord.TagType) ([]*Entry, error) {
	return v.s.query(author, kinds)
}

func (v view) Package(author *account.Account) (*Package, error) {
	return v.s.pack(author)
}

func (v view) Head(author *account.Account) (uint64, transactionrecord.Link) {
	return v.s.head(author)
}

// Commit - append a record to the signer's own chain
//
// the local admission hook runs first; on any failure nothing is written
func (s *Store) Commit(signer *account.PrivateKey, packed transactionrecord.Packed, at time.Time) (*Entry, error) {
	s.Lock()
	defer s.Unlock()

	entry, err := s.prepare(signer, packed, at, false)
	if nil != err {
		return nil, err
	}

	err = s.write(entry, true)
	if nil != err {
		return nil, err
	}

	s.log.Infof("commit: %s  kind: %s  sequence: %d", entry.Link, entry.Header.Kind, entry.Header.Sequence)
	return entry, nil
}

// DryRun - run the admission checks of Commit without writing
//
// an accept is checked before its countersignature exists
func (s *Store) DryRun(signer *account.PrivateKey, packed transactionrecord.Packed, at time.Time) error {
	s.RLock()
	defer s.RUnlock()

	_, err := s.prepare(signer, packed, at, true)
	return err
}

func (s *Store) prepare(signer *account.PrivateKey, packed transactionrecord.Packed, at time.Time, draft bool) (*Entry, error) {
	if nil == signer {
		return nil, fault.MissingParameters
	}
	author := signer.Account()

	tx, err := unpackRecord(packed)
	if nil != err {
		return nil, err
	}

	link := packed.MakeLink()
	if s.database.Pool.Members.Has(memberKey(author, link)) {
		return nil, fault.EntryAlreadyExists
	}

	sequence, previous := s.head(author)
	header := &Header{
		Kind:      tx.Tag(),
		Author:    author,
		Sequence:  sequence,
		Previous:  previous,
		EntryLink: link,
		Time:      FormatTime(at),
	}
	err = header.Sign(signer)
	if nil != err {
		return nil, err
	}

	if draft {
		err = s.validator.ValidateDraft(view{s: s}, header, packed)
	} else {
		err = s.validator.ValidateCommit(view{s: s}, header, packed)
	}
	if nil != err {
		s.log.Warnf("commit: %s  kind: %s  refused: %s", link, header.Kind, err)
		return nil, err
	}

	entry := &Entry{
		Link:        link,
		Header:      header,
		Packed:      packed,
		Transaction: tx,
	}
	return entry, nil
}

// Put - admit a record from another author's chain
//
// the package is the author's chain before this record; admitting an
// entry that is already present is not an error
func (s *Store) Put(pkg *Package, header *Header, packed transactionrecord.Packed) (*Entry, error) {
	s.Lock()
	defer s.Unlock()

	if nil == pkg || nil == header || nil == header.Author {
		return nil, fault.MissingParameters
	}

	entry, err := NewEntry(header, packed)
	if nil != err {
		return nil, err
	}
	if _, err := header.Pack(); nil != err {
		return nil, err
	}

	if s.database.Pool.Members.Has(memberKey(header.Author, entry.Link)) {
		return s.get(entry.Link)
	}

	err = s.validator.ValidatePackage(view{s: s}, pkg, header, packed)
	if nil != err {
		s.log.Warnf("put: %s  kind: %s  author: %s  refused: %s", entry.Link, header.Kind, header.Author, err)
		return nil, err
	}

	err = s.write(entry, false)
	if nil != err {
		return nil, err
	}

	s.log.Infof("put: %s  kind: %s  author: %s", entry.Link, header.Kind, header.Author)
	return entry, nil
}

func (s *Store) write(entry *Entry, own bool) error {
	header := entry.Header
	packedHeader, err := header.Pack()
	if nil != err {
		return err
	}
	headerLink := transactionrecord.Packed(packedHeader).MakeLink()

	pools := &s.database.Pool
	trx, err := s.database.Begin()
	if nil != err {
		return fault.Collaborator("store begin", err)
	}

	if !trx.Has(pools.Entries, entry.Link[:]) {
		trx.Put(pools.Entries, entry.Link[:], entry.Packed)
		trx.Put(pools.EntryHeaders, entry.Link[:], headerLink[:])
	}
	trx.Put(pools.Headers, headerLink[:], packedHeader)
	trx.Put(pools.Chains, chainKey(header.Author, header.Sequence), headerLink[:])
	trx.Put(pools.Members, memberKey(header.Author, entry.Link), headerLink[:])
	if own {
		trx.PutNB(pools.ChainHeads, header.Author.Bytes(), header.Sequence+1, headerLink[:])
	}

	return fault.Collaborator("store commit", trx.Commit())
}

// Has - whether an entry is present
func (s *Store) Has(link transactionrecord.Link) bool {
	s.RLock()
	defer s.RUnlock()
	return s.database.Pool.Entries.Has(link[:])
}

// Get - fetch an entry by its link
func (s *Store) Get(link transactionrecord.Link) (*Entry, error) {
	s.RLock()
	defer s.RUnlock()
	return s.get(link)
}

// Member - an entry with its header from the author's chain
func (s *Store) Member(author *account.Account, link transactionrecord.Link) (*Entry, error) {
	s.RLock()
	defer s.RUnlock()

	if nil == author {
		return nil, fault.MissingParameters
	}
	pools := &s.database.Pool
	packed := pools.Entries.Get(link[:])
	if nil == packed {
		return nil, fault.EntryNotFound
	}
	headerLink := pools.Members.Get(memberKey(author, link))
	if nil == headerLink {
		return nil, fault.EntryNotFound
	}
	return s.entry(headerLink, packed)
}

func (s *Store) get(link transactionrecord.Link) (*Entry, error) {
	pools := &s.database.Pool
	packed := pools.Entries.Get(link[:])
	if nil == packed {
		return nil, fault.EntryNotFound
	}
	headerLink := pools.EntryHeaders.Get(link[:])
	if nil == headerLink {
		return nil, fault.EntryNotFound
	}
	return s.entry(headerLink, packed)
}

func (s *Store) entry(headerLink []byte, packed []byte) (*Entry, error) {
	packedHeader := s.database.Pool.Headers.Get(headerLink)
	if nil == packedHeader {
		return nil, fault.EntryNotFound
	}
	header, err := UnpackHeader(packedHeader)
	if nil != err {
		return nil, err
	}
	return NewEntry(header, packed)
}

// Query - the author's chain in sequence order, optionally only some kinds
func (s *Store) Query(author *account.Account, kinds ...transactionrecord.TagType) ([]*Entry, error) {
	s.RLock()
	defer s.RUnlock()
	return s.query(author, kinds)
}

func (s *Store) query(author *account.Account, kinds []transactionrecord.TagType) ([]*Entry, error) {
	if nil == author {
		return nil, fault.MissingParameters
	}

	wanted := func(kind transactionrecord.TagType) bool {
		if 0 == len(kinds) {
			return true
		}
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}

	pools := &s.database.Pool
	entries := make([]*Entry, 0)
	cursor := pools.Chains.NewPrefixCursor(author.Bytes())
	err := cursor.Map(func(key []byte, headerLink []byte) error {
		packedHeader := pools.Headers.Get(headerLink)
		if nil == packedHeader {
			return fault.EntryNotFound
		}
		header, err := UnpackHeader(packedHeader)
		if nil != err {
			return err
		}
		if !wanted(header.Kind) {
			return nil
		}
		packed := pools.Entries.Get(header.EntryLink[:])
		if nil == packed {
			return fault.EntryNotFound
		}
		entry, err := NewEntry(header, packed)
		if nil != err {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if nil != err {
		return nil, fault.Collaborator("store query", err)
	}
	return entries, nil
}

// Package - the author's chain as delivered to other validators
func (s *Store) Package(author *account.Account) (*Package, error) {
	s.RLock()
	defer s.RUnlock()
	return s.pack(author)
}

func (s *Store) pack(author *account.Account) (*Package, error) {
	entries, err := s.query(author, nil)
	if nil != err {
		return nil, err
	}
	pkg := &Package{
		Author:  author,
		Headers: make([]*Header, 0, len(entries)),
		Entries: make([]transactionrecord.Packed, 0, len(entries)),
	}
	for _, entry := range entries {
		pkg.Headers = append(pkg.Headers, entry.Header)
		pkg.Entries = append(pkg.Entries, entry.Packed)
	}
	return pkg, nil
}

// Head - next sequence number and last header link of an own chain
func (s *Store) Head(author *account.Account) (uint64, transactionrecord.Link) {
	s.RLock()
	defer s.RUnlock()
	return s.head(author)
}

func (s *Store) head(author *account.Account) (uint64, transactionrecord.Link) {
	n, b := s.database.Pool.ChainHeads.GetNB(author.Bytes())
	if nil == b {
		return 0, transactionrecord.Link{}
	}
	link, err := transactionrecord.LinkFromBytes(b)
	logger.PanicIfError("chain head", err)
	return n, link
}

func chainKey(author *account.Account, sequence uint64) []byte {
	key := author.Bytes()
	n := len(key)
	key = append(key, make([]byte, 8)...)
	binary.BigEndian.PutUint64(key[n:], sequence)
	return key
}

func memberKey(author *account.Account, link transactionrecord.Link) []byte {
	return append(author.Bytes(), link[:]...)
}
