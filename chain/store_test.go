// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/fixtures"
	"github.com/mutualcredit/transactord/storage"
	"github.com/mutualcredit/transactord/transactionrecord"
)

type stubValidator struct {
	commits  int
	drafts   int
	packages int
	err      error
}

func (v *stubValidator) ValidateCommit(reader chain.Reader, header *chain.Header, packed transactionrecord.Packed) error {
	v.commits += 1
	return v.err
}

func (v *stubValidator) ValidateDraft(reader chain.Reader, header *chain.Header, packed transactionrecord.Packed) error {
	v.drafts += 1
	return v.err
}

func (v *stubValidator) ValidatePackage(reader chain.Reader, pkg *chain.Package, header *chain.Header, packed transactionrecord.Packed) error {
	v.packages += 1
	if _, err := pkg.Verify(); nil != err {
		return err
	}
	if err := pkg.Follows(header); nil != err {
		return err
	}
	return v.err
}

func newStore(t *testing.T) (*chain.Store, *stubValidator) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	v := &stubValidator{}
	return chain.New(db, v), v
}

func proposal(t *testing.T, author *account.PrivateKey, other *account.PrivateKey, nonce uint64) transactionrecord.Packed {
	value, err := amount.FromInteger(100)
	if nil != err {
		t.Fatalf("amount error: %s", err)
	}
	init := &transactionrecord.BetaSpenderInit{
		Spender:   author.Account(),
		Recipient: other.Account(),
		Amount:    value,
		Nonce:     nonce,
	}
	packed, err := transactionrecord.Sign(init, author)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return packed
}

var baseTime = time.Date(2019, 10, 1, 12, 30, 0, 0, time.UTC)

func TestCommitAndQuery(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store, v := newStore(t)
	x := fixtures.Key(t, 1)
	y := fixtures.Key(t, 2)

	n, previous := store.Head(x.Account())
	assert.Equal(t, uint64(0), n, "empty head")
	assert.True(t, previous.IsZero(), "empty head link")

	links := []transactionrecord.Link{}
	for i := uint64(1); i <= 3; i += 1 {
		entry, err := store.Commit(x, proposal(t, x, y, i), baseTime.Add(time.Duration(i)*time.Second))
		if nil != err {
			t.Fatalf("commit %d error: %s", i, err)
		}
		assert.Equal(t, i-1, entry.Header.Sequence, "sequence")
		links = append(links, entry.Link)
	}
	assert.Equal(t, 3, v.commits, "hook calls")

	n, previous = store.Head(x.Account())
	assert.Equal(t, uint64(3), n, "head")
	assert.False(t, previous.IsZero(), "head link")

	entries, err := store.Query(x.Account())
	assert.Nil(t, err, "query")
	if assert.Equal(t, 3, len(entries), "entries") {
		for i, entry := range entries {
			assert.Equal(t, links[i], entry.Link, "chain order")
		}
	}

	entries, err = store.Query(x.Account(), transactionrecord.BetaRecipientAcceptTag)
	assert.Nil(t, err, "query")
	assert.Equal(t, 0, len(entries), "filtered")

	entry, err := store.Get(links[1])
	assert.Nil(t, err, "get")
	assert.Equal(t, transactionrecord.BetaSpenderInitTag, entry.Header.Kind, "kind")
	assert.Equal(t, "2019-10-01 12:30:02.000000000 +0000", entry.Header.Time, "time")
	assert.True(t, store.Has(links[2]), "has")

	pkg, err := store.Package(x.Account())
	assert.Nil(t, err, "package")
	verified, err := pkg.Verify()
	assert.Nil(t, err, "verify")
	assert.Equal(t, 3, len(verified), "verified entries")

	_, err = store.Commit(x, proposal(t, x, y, 2), baseTime)
	assert.Equal(t, fault.EntryAlreadyExists, err, "duplicate")
}

func TestRefusedCommitLeavesStoreUntouched(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store, v := newStore(t)
	x := fixtures.Key(t, 1)
	y := fixtures.Key(t, 2)

	v.err = fault.OverCreditLimit
	packed := proposal(t, x, y, 1)
	_, err := store.Commit(x, packed, baseTime)
	assert.Equal(t, fault.OverCreditLimit, err, "refused")

	assert.False(t, store.Has(packed.MakeLink()), "written after refusal")
	n, _ := store.Head(x.Account())
	assert.Equal(t, uint64(0), n, "head moved")

	v.err = nil
	err = store.DryRun(x, packed, baseTime)
	assert.Nil(t, err, "dry run")
	assert.Equal(t, 1, v.drafts, "draft hook")
	assert.False(t, store.Has(packed.MakeLink()), "written by dry run")
}

func TestPutForeignRecord(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	local, _ := newStore(t)
	remote, v := newStore(t)
	x := fixtures.Key(t, 1)
	y := fixtures.Key(t, 2)

	_, err := local.Commit(x, proposal(t, x, y, 1), baseTime)
	assert.Nil(t, err, "first commit")
	pkg, err := local.Package(x.Account())
	assert.Nil(t, err, "package")

	entry, err := local.Commit(x, proposal(t, x, y, 2), baseTime.Add(time.Minute))
	assert.Nil(t, err, "second commit")

	// the second record arrives without its predecessor being known remotely
	_, err = remote.Put(pkg, entry.Header, entry.Packed)
	assert.Nil(t, err, "put")
	assert.Equal(t, 1, v.packages, "hook calls")
	assert.True(t, remote.Has(entry.Link), "admitted")

	member, err := remote.Member(x.Account(), entry.Link)
	assert.Nil(t, err, "member")
	assert.Equal(t, entry.Header.Sequence, member.Header.Sequence, "member header")
	_, err = remote.Member(y.Account(), entry.Link)
	assert.Equal(t, fault.EntryNotFound, err, "not in other chain")

	_, err = remote.Put(pkg, entry.Header, entry.Packed)
	assert.Nil(t, err, "repeated put")
	assert.Equal(t, 1, v.packages, "hook called for known entry")

	// a package that does not end just before the header
	empty := &chain.Package{Author: x.Account()}
	other, _ := newStore(t)
	_, err = other.Put(empty, entry.Header, entry.Packed)
	assert.Equal(t, fault.WrongSequence, err, "gap")
	assert.False(t, other.Has(entry.Link), "admitted with gap")

	// header does not describe the record
	_, err = other.Put(pkg, entry.Header, proposal(t, x, y, 3))
	assert.Equal(t, fault.HeaderIsInvalid, err, "mismatch")
}

func TestPackageTampering(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store, _ := newStore(t)
	x := fixtures.Key(t, 1)
	y := fixtures.Key(t, 2)

	for i := uint64(1); i <= 2; i += 1 {
		_, err := store.Commit(x, proposal(t, x, y, i), baseTime)
		assert.Nil(t, err, "commit")
	}

	pkg, _ := store.Package(x.Account())
	pkg.Entries[0], pkg.Entries[1] = pkg.Entries[1], pkg.Entries[0]
	_, err := pkg.Verify()
	assert.Equal(t, fault.InvalidPackage, err, "swapped entries")

	pkg, _ = store.Package(x.Account())
	pkg.Headers = pkg.Headers[1:]
	pkg.Entries = pkg.Entries[1:]
	_, err = pkg.Verify()
	assert.Equal(t, fault.InvalidPackage, err, "truncated front")

	pkg, _ = store.Package(x.Account())
	pkg.Author = y.Account()
	_, err = pkg.Verify()
	assert.Equal(t, fault.InvalidPackage, err, "wrong author")

	pkg, _ = store.Package(x.Account())
	prefix := pkg.Prefix(1)
	_, err = prefix.Verify()
	assert.Nil(t, err, "prefix verifies")
	assert.Nil(t, prefix.Follows(pkg.Headers[1]), "prefix precedes second header")
	assert.Equal(t, 2, len(pkg.Prefix(9).Headers), "prefix beyond end")
}

func TestHeaderPacking(t *testing.T) {
	x := fixtures.Key(t, 1)
	y := fixtures.Key(t, 2)
	packed := proposal(t, x, y, 1)

	header := &chain.Header{
		Kind:      transactionrecord.BetaSpenderInitTag,
		Author:    x.Account(),
		Sequence:  5,
		EntryLink: packed.MakeLink(),
		Time:      chain.FormatTime(baseTime),
	}
	assert.Equal(t, fault.WrongChainOwner, header.Sign(y), "foreign key")
	assert.Nil(t, header.Sign(x), "sign")

	buffer, err := header.Pack()
	assert.Nil(t, err, "pack")
	unpacked, err := chain.UnpackHeader(buffer)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, header, unpacked, "round trip")

	_, err = chain.UnpackHeader(append(buffer, 0))
	assert.Equal(t, fault.HeaderIsInvalid, err, "trailing bytes")

	header.Sequence = 6
	_, err = header.Pack()
	assert.Equal(t, fault.InvalidSignature, err, "altered header")
}
