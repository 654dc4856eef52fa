// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/ledger"
	"github.com/mutualcredit/transactord/pending"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// LimitsRepr - ledger limits in both amount forms
type LimitsRepr struct {
	MaxTransactionAmount amount.Repr `json:"maxTransactionAmount"`
	MaxTransactionFee    amount.Repr `json:"maxTransactionFee"`
	CreditLimit          amount.Repr `json:"creditLimit"`
}

// Info - identity of the node and the limits it validates with
type Info struct {
	SelfHash  *account.Account `json:"selfHash"`
	Limits    LimitsRepr       `json:"limits"`
	FeeFactor float64          `json:"transactionFeeFactor"`
}

// Record - one stored record and where it was first admitted
type Record struct {
	Link        transactionrecord.Link        `json:"link"`
	Kind        transactionrecord.TagType     `json:"kind"`
	Author      *account.Account              `json:"author"`
	Sequence    uint64                        `json:"sequence,string"`
	Time        string                        `json:"time"`
	Transaction transactionrecord.Transaction `json:"record"`
}

// LedgerState - balance and accrued fee, replayed from this node's chain
func (node *Node) LedgerState() (ledger.State, error) {
	limits, err := node.properties.Limits()
	if nil != err {
		return ledger.State{}, err
	}
	return ledger.StateOf(node.store, node.identity, limits)
}

// ListPending - inits addressed to or made by this node that are unresolved
func (node *Node) ListPending() (*pending.Pending, error) {
	return pending.List(node.index, node.identity)
}

// SystemInfo - this node's identity and current limits
func (node *Node) SystemInfo() (*Info, error) {
	limits, err := node.properties.Limits()
	if nil != err {
		return nil, err
	}
	info := &Info{
		SelfHash: node.identity,
		Limits: LimitsRepr{
			MaxTransactionAmount: limits.MaxTransactionAmount.Repr(),
			MaxTransactionFee:    limits.MaxTransactionFee.Repr(),
			CreditLimit:          limits.CreditLimit.Repr(),
		},
		FeeFactor: limits.FeeFactor,
	}
	return info, nil
}

// Get - a record by its link
func (node *Node) Get(link transactionrecord.Link) (*Record, error) {
	entry, err := node.store.Get(link)
	if nil != err {
		return nil, err
	}
	record := &Record{
		Link:        entry.Link,
		Kind:        entry.Header.Kind,
		Author:      entry.Header.Author,
		Sequence:    entry.Header.Sequence,
		Time:        entry.Header.Time,
		Transaction: entry.Transaction,
	}
	return record, nil
}

// Transactions - completed transfers in time order
func (node *Node) Transactions() ([]ledger.Transfer, error) {
	entries, err := node.store.Query(node.identity, transactionrecord.LedgerTags()...)
	if nil != err {
		return nil, err
	}
	return ledger.Transfers(node.identity, entries)
}
