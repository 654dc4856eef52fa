// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sort"
	"time"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// Delta - signed change to one identity's balance
type Delta struct {
	Amount amount.Amount
	Time   time.Time
}

// Transfer - one completed transfer seen from the chain owner
type Transfer struct {
	Link         transactionrecord.Link    `json:"link"`
	Kind         transactionrecord.TagType `json:"kind"`
	InitRef      transactionrecord.Link    `json:"initRef"`
	Time         time.Time                 `json:"time"`
	Amount       amount.Amount             `json:"amount"` // negative when the owner spent
	Counterparty *account.Account          `json:"counterparty"`
	Notes        string                    `json:"notes,omitempty"`
}

// Querier - the part of a chain reader needed for local replay
type Querier interface {
	Query(author *account.Account, kinds ...transactionrecord.TagType) ([]*chain.Entry, error)
}

// Transfers - the owner's completed transfers in time order
//
// only accept records move value; every other kind is ignored
func Transfers(owner *account.Account, entries []*chain.Entry) ([]Transfer, error) {
	if nil == owner {
		return nil, fault.MissingParameters
	}

	transfers := make([]Transfer, 0, len(entries))
	for _, entry := range entries {
		if !entry.Header.Kind.IsLedger() {
			continue
		}
		transfer, ok := entry.Transaction.(transactionrecord.Countersigned)
		if !ok {
			return nil, fault.UnknownRecordKind
		}

		at, err := ParseTime(entry.Header.Time)
		if nil != err {
			return nil, err
		}

		value := transfer.GetAmount()
		counterparty := transfer.GetRecipient()
		switch {
		case owner.Equal(transfer.GetSpender()):
			value = value.Neg()
		case owner.Equal(transfer.GetRecipient()):
			counterparty = transfer.GetSpender()
		default:
			return nil, fault.NotPartyToTransaction
		}

		transfers = append(transfers, Transfer{
			Link:         entry.Link,
			Kind:         entry.Header.Kind,
			InitRef:      transfer.GetInitRef(),
			Time:         at,
			Amount:       value,
			Counterparty: counterparty,
			Notes:        transfer.GetNotes(),
		})
	}

	sort.SliceStable(transfers, func(i, j int) bool {
		return transfers[i].Time.Before(transfers[j].Time)
	})
	return transfers, nil
}

// Deltas - the owner's balance changes in time order
func Deltas(owner *account.Account, entries []*chain.Entry) ([]Delta, error) {
	transfers, err := Transfers(owner, entries)
	if nil != err {
		return nil, err
	}
	deltas := make([]Delta, len(transfers))
	for i, transfer := range transfers {
		deltas[i] = Delta{
			Amount: transfer.Amount,
			Time:   transfer.Time,
		}
	}
	return deltas, nil
}

// StateOf - replay the owner's own chain
func StateOf(querier Querier, owner *account.Account, limits Limits) (State, error) {
	entries, err := querier.Query(owner, transactionrecord.LedgerTags()...)
	if nil != err {
		return State{}, err
	}
	deltas, err := Deltas(owner, entries)
	if nil != err {
		return State{}, err
	}
	return Replay(deltas, limits)
}
