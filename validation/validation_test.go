// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/fixtures"
	"github.com/mutualcredit/transactord/ledger"
	"github.com/mutualcredit/transactord/storage"
	"github.com/mutualcredit/transactord/transactionrecord"
	"github.com/mutualcredit/transactord/validation"
)

var now = time.Date(2019, 2, 3, 4, 5, 6, 0, time.UTC)

type node struct {
	key   *account.PrivateKey
	store *chain.Store
}

type world struct {
	t         *testing.T
	validator *validation.Validator
	nonce     uint64
	clock     time.Time
}

func newWorld(t *testing.T, limits ledger.Limits) *world {
	return &world{
		t:         t,
		validator: validation.New(ledger.Fixed(limits)),
		clock:     now,
	}
}

func (w *world) node(b byte) *node {
	db, err := storage.OpenMemory()
	if nil != err {
		w.t.Fatalf("storage open error: %s", err)
	}
	return &node{
		key:   fixtures.Key(w.t, b),
		store: chain.New(db, w.validator),
	}
}

func (w *world) tick() time.Time {
	w.clock = w.clock.Add(time.Minute)
	return w.clock
}

func (w *world) value(s string) amount.Amount {
	a, err := amount.Parse(s)
	if nil != err {
		w.t.Fatalf("amount error: %s", err)
	}
	return a
}

// spender offers, recipient signs the accept, spender countersigns
func (w *world) offer(spender *node, recipient *node, value string) (transactionrecord.Link, transactionrecord.Packed) {
	w.nonce += 1
	init := &transactionrecord.BetaSpenderInit{
		Spender:   spender.key.Account(),
		Recipient: recipient.key.Account(),
		Amount:    w.value(value),
		Nonce:     w.nonce,
	}
	packed, err := transactionrecord.Sign(init, spender.key)
	if nil != err {
		w.t.Fatalf("sign init error: %s", err)
	}
	entry, err := spender.store.Commit(spender.key, packed, w.tick())
	if nil != err {
		w.t.Fatalf("commit init error: %s", err)
	}

	accept := &transactionrecord.BetaRecipientAccept{
		InitRef:   entry.Link,
		Spender:   init.Spender,
		Recipient: init.Recipient,
		Amount:    init.Amount,
	}
	_, err = transactionrecord.Sign(accept, recipient.key)
	if nil != err {
		w.t.Fatalf("sign accept error: %s", err)
	}
	countersigned, err := transactionrecord.Countersign(accept, spender.key)
	if nil != err {
		w.t.Fatalf("countersign error: %s", err)
	}
	return entry.Link, countersigned
}

// complete a transfer on both chains
func (w *world) transfer(spender *node, recipient *node, value string) {
	_, packed := w.offer(spender, recipient, value)
	if _, err := spender.store.Commit(spender.key, packed, w.tick()); nil != err {
		w.t.Fatalf("spender commit error: %s", err)
	}
	if _, err := recipient.store.Commit(recipient.key, packed, w.tick()); nil != err {
		w.t.Fatalf("recipient commit error: %s", err)
	}
}

// hand a committed record of one node's chain to another node
func (w *world) share(from *node, to *node, link transactionrecord.Link) {
	entry, err := from.store.Member(from.key.Account(), link)
	if nil != err {
		w.t.Fatalf("member error: %s", err)
	}
	pkg, err := from.store.Package(from.key.Account())
	if nil != err {
		w.t.Fatalf("package error: %s", err)
	}
	_, err = to.store.Put(pkg.Prefix(entry.Header.Sequence), entry.Header, entry.Packed)
	if nil != err {
		w.t.Fatalf("put error: %s", err)
	}
}

// run both admission paths for a candidate on the owner's chain
func (w *world) both(owner *node, packed transactionrecord.Packed) (error, error) {
	return w.bothAt(owner, owner, packed)
}

// as both, with the package delivered to the receiver's store
func (w *world) bothAt(owner *node, receiver *node, packed transactionrecord.Packed) (error, error) {
	tx, _, err := packed.Unpack()
	if nil != err {
		w.t.Fatalf("unpack error: %s", err)
	}
	sequence, previous := owner.store.Head(owner.key.Account())
	header := &chain.Header{
		Kind:      tx.Tag(),
		Author:    owner.key.Account(),
		Sequence:  sequence,
		Previous:  previous,
		EntryLink: packed.MakeLink(),
		Time:      chain.FormatTime(w.tick()),
	}
	if err := header.Sign(owner.key); nil != err {
		w.t.Fatalf("header sign error: %s", err)
	}

	pkg, err := owner.store.Package(owner.key.Account())
	if nil != err {
		w.t.Fatalf("package error: %s", err)
	}

	local := w.validator.ValidateCommit(owner.store, header, packed)
	delivered := w.validator.ValidatePackage(receiver.store, pkg, header, packed)
	return local, delivered
}

func limits(t *testing.T, maxTransaction string, creditLimit string) ledger.Limits {
	l, err := ledger.NewLimits(maxTransaction, "2710", 0.01, creditLimit)
	if nil != err {
		t.Fatalf("limits error: %s", err)
	}
	return l
}

func TestPathsAgreeOnValidHistory(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	w := newWorld(t, limits(t, "3e8", "5dc"))
	x := w.node(1)
	y := w.node(2)

	w.transfer(x, y, "64")
	w.transfer(y, x, "c8")
	w.transfer(x, y, "3e8")

	_, candidate := w.offer(y, x, "12c")
	local, delivered := w.both(y, candidate)
	assert.Nil(t, local, "local")
	assert.Nil(t, delivered, "package")

	local, delivered = w.both(x, candidate)
	assert.Nil(t, local, "countersigner local")
	assert.Nil(t, delivered, "countersigner package")
}

func TestPathsAgreeOnMaxTransaction(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	w := newWorld(t, limits(t, "3e8", ""))
	x := w.node(1)
	y := w.node(2)

	_, candidate := w.offer(x, y, "3e9")
	local, delivered := w.both(y, candidate)
	assert.Equal(t, fault.OverMaxTransactionAmount, local, "local")
	assert.Equal(t, local, delivered, "package")

	local, delivered = w.both(x, candidate)
	assert.Equal(t, fault.OverMaxTransactionAmount, local, "spender local")
	assert.Equal(t, local, delivered, "spender package")
}

func TestPathsAgreeOnCreditLimit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	w := newWorld(t, limits(t, "3e8", "5dc"))
	x := w.node(1)
	y := w.node(2)

	w.transfer(x, y, "3e8")

	// a further 1000 would take y to 2000 against a limit of 1500
	_, candidate := w.offer(x, y, "3e8")
	local, delivered := w.both(y, candidate)
	assert.Equal(t, fault.OverCreditLimit, local, "local")
	assert.Equal(t, local, delivered, "package")

	// x only spends so its own replay succeeds
	local, delivered = w.both(x, candidate)
	assert.Nil(t, local, "spender local")
	assert.Nil(t, delivered, "spender package")

	// the store refuses and stays untouched
	_, err := y.store.Commit(y.key, candidate, w.tick())
	assert.Equal(t, fault.OverCreditLimit, err, "commit")
	assert.False(t, y.store.Has(candidate.MakeLink()), "written")
}

func TestRoleChecks(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	w := newWorld(t, limits(t, "3e8", ""))
	x := w.node(1)
	y := w.node(2)
	z := w.node(3)

	initRef, candidate := w.offer(x, y, "1")

	local, delivered := w.both(z, candidate)
	assert.Equal(t, fault.NotPartyToTransaction, local, "stranger local")
	assert.Equal(t, local, delivered, "stranger package")

	// an init authored by someone else
	init := &transactionrecord.AlphaRecipientInit{
		Spender:   x.key.Account(),
		Recipient: y.key.Account(),
		Amount:    w.value("1"),
	}
	packed, err := transactionrecord.Sign(init, y.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.both(x, packed)
	assert.Equal(t, fault.WrongChainOwner, local, "foreign init local")
	assert.Equal(t, local, delivered, "foreign init package")

	// accept without the counterparty's signature
	accept := &transactionrecord.BetaRecipientAccept{
		InitRef:   initRef,
		Spender:   x.key.Account(),
		Recipient: y.key.Account(),
		Amount:    w.value("1"),
	}
	packed, err = transactionrecord.Sign(accept, y.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.both(y, packed)
	assert.Equal(t, fault.CountersignatureMissing, local, "uncountersigned local")
	assert.Equal(t, local, delivered, "uncountersigned package")
	assert.Nil(t, y.store.DryRun(y.key, packed, w.tick()), "uncountersigned draft")
	assert.Equal(t, fault.NotPartyToTransaction, z.store.DryRun(z.key, packed, w.tick()), "stranger draft")

	// closures must be signed by the chain owner
	reject := &transactionrecord.BetaRecipientReject{InitRef: initRef}
	packed, err = transactionrecord.Sign(reject, y.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.both(x, packed)
	assert.Equal(t, fault.WrongChainOwner, local, "foreign reject local")
	assert.Equal(t, local, delivered, "foreign reject package")

	// and need the init they close
	local, delivered = w.both(y, packed)
	assert.Equal(t, fault.InitNotFound, local, "reject of unseen init local")
	assert.Equal(t, local, delivered, "reject of unseen init package")

	w.share(x, y, initRef)
	local, delivered = w.bothAt(y, x, packed)
	assert.Nil(t, local, "reject local")
	assert.Nil(t, delivered, "reject package")

	withdraw := &transactionrecord.BetaSpenderWithdraw{InitRef: initRef}
	packed, err = transactionrecord.Sign(withdraw, x.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.bothAt(x, y, packed)
	assert.Nil(t, local, "withdraw local")
	assert.Nil(t, delivered, "withdraw package")

	// a stranger holding a copy of the init may not close it
	w.share(x, z, initRef)
	reject = &transactionrecord.BetaRecipientReject{InitRef: initRef}
	packed, err = transactionrecord.Sign(reject, z.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.bothAt(z, x, packed)
	assert.Equal(t, fault.NotRecipient, local, "stranger reject local")
	assert.Equal(t, local, delivered, "stranger reject package")
	assert.True(t, fault.IsErrAuthorization(local), "class")

	withdraw = &transactionrecord.BetaSpenderWithdraw{InitRef: initRef}
	packed, err = transactionrecord.Sign(withdraw, z.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.bothAt(z, y, packed)
	assert.Equal(t, fault.NotSpender, local, "stranger withdraw local")
	assert.Equal(t, local, delivered, "stranger withdraw package")

	// the recipient may not withdraw an offer
	packed, err = transactionrecord.Sign(withdraw, y.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.bothAt(y, x, packed)
	assert.Equal(t, fault.NotSpender, local, "recipient withdraw local")
	assert.Equal(t, local, delivered, "recipient withdraw package")

	// a request closure cannot name an offer
	alphaReject := &transactionrecord.AlphaSpenderReject{InitRef: initRef}
	packed, err = transactionrecord.Sign(alphaReject, x.key)
	assert.Nil(t, err, "sign")
	local, delivered = w.bothAt(x, y, packed)
	assert.Equal(t, fault.KindIsNotInit, local, "wrong protocol local")
	assert.Equal(t, local, delivered, "wrong protocol package")
}

func TestTamperedPackage(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	w := newWorld(t, limits(t, "3e8", "5dc"))
	x := w.node(1)
	y := w.node(2)

	w.transfer(x, y, "3e8")
	_, candidate := w.offer(x, y, "1f4")

	sequence, previous := y.store.Head(y.key.Account())
	header := &chain.Header{
		Kind:      transactionrecord.BetaRecipientAcceptTag,
		Author:    y.key.Account(),
		Sequence:  sequence,
		Previous:  previous,
		EntryLink: candidate.MakeLink(),
		Time:      chain.FormatTime(w.tick()),
	}
	assert.Nil(t, header.Sign(y.key), "sign")

	pkg, _ := y.store.Package(y.key.Account())
	assert.Nil(t, w.validator.ValidatePackage(x.store, pkg, header, candidate), "intact package")

	// hiding the earlier receipt would let the candidate through
	hidden := &chain.Package{Author: pkg.Author}
	err := w.validator.ValidatePackage(x.store, hidden, header, candidate)
	assert.Equal(t, fault.WrongSequence, err, "truncated package")

	pkg.Entries[0] = candidate
	err = w.validator.ValidatePackage(x.store, pkg, header, candidate)
	assert.Equal(t, fault.InvalidPackage, err, "substituted entry")
	assert.True(t, fault.IsErrValidation(err), "class")

	err = w.validator.ValidatePackage(x.store, nil, header, candidate)
	assert.Equal(t, fault.MissingParameters, err, "no package")
}
