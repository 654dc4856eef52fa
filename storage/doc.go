// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. link         = 32 byte SHA3-256 of packed data
// 4. sequence     = position in an author's chain as big endian uint64 (8 bytes)
// 5. author       = key variant ++ 32 byte ed25519 public key (33 bytes)
// 6. *others*     = byte values of various length
//
// Entries:
//
//	E ++ entry link            - every admitted record, own or foreign
//	                             data: packed transaction record
//	R ++ entry link            - header under which the record was first admitted
//	                             data: header link
//
// Chains:
//
//	H ++ header link           - chain headers
//	                             data: packed header
//	C ++ author ++ sequence    - per author chain
//	                             data: header link
//	N ++ author                - head of a chain
//	                             data: next sequence ++ last header link
//	M ++ author ++ entry link  - record is part of the author's chain
//	                             data: header link
//
// Links:
//
//	L ++ len(base) ++ base ++ len(tag) ++ tag ++ target link
//	                           - notification links
//	                             data: record kind (varint)
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
