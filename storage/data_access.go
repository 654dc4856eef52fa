// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// DataAccess - batched writes with read-your-writes through the cache
//
// iterators only see committed data
type DataAccess interface {
	Begin()
	Put([]byte, []byte)
	Delete([]byte)
	Commit() error
	Abort()
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
}

type dataAccess struct {
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newDA(db *leveldb.DB, cache Cache) DataAccess {
	return &dataAccess{
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache,
	}
}

func (d *dataAccess) Begin() {
	d.batch.Reset()
	d.cache.Clear()
}

func (d *dataAccess) Put(key []byte, value []byte) {
	d.batch.Put(key, value)
	d.cache.Set(dbPut, string(key), value)
}

func (d *dataAccess) Delete(key []byte) {
	d.batch.Delete(key)
	d.cache.Set(dbDelete, string(key), nil)
}

func (d *dataAccess) Commit() error {
	err := d.db.Write(d.batch, nil)
	d.Begin()
	return err
}

func (d *dataAccess) Abort() {
	d.Begin()
}

func (d *dataAccess) Get(key []byte) ([]byte, error) {
	if value, deleted, found := d.cache.Get(string(key)); found {
		if deleted {
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return d.db.Get(key, nil)
}

func (d *dataAccess) Has(key []byte) (bool, error) {
	if _, deleted, found := d.cache.Get(string(key)); found {
		return !deleted, nil
	}
	return d.db.Has(key, nil)
}

func (d *dataAccess) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}
