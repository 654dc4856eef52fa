// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notify - directed discovery links between identities, records
// and the records that announce events to them
//
// a link is never authoritative, only the record it points to is
package notify

import (
	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/storage"
	"github.com/mutualcredit/transactord/transactionrecord"
	"github.com/mutualcredit/transactord/util"
)

// Tag - the only link tag used by the protocols
const Tag = "notify"

const (
	maxTagLength = 64
)

// Base - anything a link can hang from: an identity or a record link
type Base interface {
	Bytes() []byte
}

// Source - where linked records are loaded from
type Source interface {
	Get(link transactionrecord.Link) (*chain.Entry, error)
}

// Item - one link with its target record
type Item struct {
	Hash   transactionrecord.Link
	Kind   transactionrecord.TagType
	Record transactionrecord.Transaction
}

// Index - link index over the links pool
type Index struct {
	log    *logger.L
	pool   *storage.PoolHandle
	db     *storage.Database
	source Source
}

// New - link index on a database, records are resolved through source
func New(db *storage.Database, source Source) *Index {
	return &Index{
		log:    logger.New("notify"),
		pool:   db.Pool.Links,
		db:     db,
		source: source,
	}
}

// Link - add a link from base to target, the target must be present
//
// adding an existing link again has no effect
func (index *Index) Link(base Base, target transactionrecord.Link, tag string) error {
	if nil == base || "" == tag {
		return fault.MissingParameters
	}
	prefix, err := linkPrefix(base, tag)
	if nil != err {
		return err
	}

	entry, err := index.source.Get(target)
	if nil != err {
		return err
	}

	key := append(prefix, target[:]...)
	if index.pool.Has(key) {
		return nil
	}

	trx, err := index.db.Begin()
	if nil != err {
		return fault.Collaborator("link begin", err)
	}
	trx.Put(index.pool, key, util.ToVarint64(uint64(entry.Header.Kind)))
	err = trx.Commit()
	if nil != err {
		return fault.Collaborator("link commit", err)
	}

	index.log.Debugf("link: %x  tag: %s  target: %s  kind: %s", base.Bytes(), tag, target, entry.Header.Kind)
	return nil
}

// GetLinks - all links from base with the tag, loaded with their records
//
// links whose record is not available locally are skipped
func (index *Index) GetLinks(base Base, tag string) ([]Item, error) {
	if nil == base {
		return nil, fault.MissingParameters
	}
	prefix, err := linkPrefix(base, tag)
	if nil != err {
		return nil, err
	}

	items := make([]Item, 0)
	cursor := index.pool.NewPrefixCursor(prefix)
	err = cursor.Map(func(key []byte, value []byte) error {
		target, err := transactionrecord.LinkFromBytes(key[len(prefix):])
		if nil != err {
			return err
		}
		kind, n := util.FromVarint64(value)
		if 0 == n {
			return fault.InvalidLink
		}
		entry, err := index.source.Get(target)
		if fault.EntryNotFound == err {
			index.log.Warnf("link target: %s  not available", target)
			return nil
		}
		if nil != err {
			return err
		}
		items = append(items, Item{
			Hash:   target,
			Kind:   transactionrecord.TagType(kind),
			Record: entry.Transaction,
		})
		return nil
	})
	if nil != err {
		return nil, fault.Collaborator("get links", err)
	}
	return items, nil
}

// len(base) ++ base ++ len(tag) ++ tag
func linkPrefix(base Base, tag string) ([]byte, error) {
	b := base.Bytes()
	if 0 == len(b) || len(tag) > maxTagLength {
		return nil, fault.InvalidLink
	}
	prefix := util.ToVarint64(uint64(len(b)))
	prefix = append(prefix, b...)
	prefix = append(prefix, util.ToVarint64(uint64(len(tag)))...)
	return append(prefix, tag...), nil
}
