// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"context"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/notify"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// AlphaInit - ask the spender to pay this node
func (node *Node) AlphaInit(ctx context.Context, spender *account.Account, value amount.Amount, notes string) (transactionrecord.Link, error) {
	err := checkProposal(spender, node.identity, value)
	if nil != err {
		return transactionrecord.Link{}, err
	}
	n, err := nonce()
	if nil != err {
		return transactionrecord.Link{}, err
	}

	init := &transactionrecord.AlphaRecipientInit{
		Spender:   spender,
		Recipient: node.identity,
		Amount:    value,
		Notes:     notes,
		Nonce:     n,
	}
	return node.commit(ctx, init, nil)
}

// AlphaAccept - the spender agrees to a recipient's request
func (node *Node) AlphaAccept(ctx context.Context, initRef transactionrecord.Link) (transactionrecord.Link, error) {
	return node.accept(ctx, initRef, transactionrecord.AlphaRecipientInitTag, node.isSpender, func(init transactionrecord.Transfer) transactionrecord.Countersigned {
		return &transactionrecord.AlphaSpenderAccept{
			InitRef:   initRef,
			Spender:   init.GetSpender(),
			Recipient: init.GetRecipient(),
			Amount:    init.GetAmount(),
			Notes:     init.GetNotes(),
		}
	})
}

// AlphaReject - the spender declines a recipient's request
func (node *Node) AlphaReject(ctx context.Context, initRef transactionrecord.Link) (transactionrecord.Link, error) {
	reject := &transactionrecord.AlphaSpenderReject{
		InitRef: initRef,
	}
	return node.commit(ctx, reject, func() error {
		_, err := node.openInit(initRef, transactionrecord.AlphaRecipientInitTag, node.isSpender)
		return err
	})
}

// BetaInit - offer to pay the recipient
func (node *Node) BetaInit(ctx context.Context, recipient *account.Account, value amount.Amount, notes string) (transactionrecord.Link, error) {
	err := checkProposal(node.identity, recipient, value)
	if nil != err {
		return transactionrecord.Link{}, err
	}
	n, err := nonce()
	if nil != err {
		return transactionrecord.Link{}, err
	}

	init := &transactionrecord.BetaSpenderInit{
		Spender:   node.identity,
		Recipient: recipient,
		Amount:    value,
		Notes:     notes,
		Nonce:     n,
	}
	return node.commit(ctx, init, nil)
}

// BetaAccept - the recipient takes a spender's offer
func (node *Node) BetaAccept(ctx context.Context, initRef transactionrecord.Link) (transactionrecord.Link, error) {
	return node.accept(ctx, initRef, transactionrecord.BetaSpenderInitTag, node.isRecipient, func(init transactionrecord.Transfer) transactionrecord.Countersigned {
		return &transactionrecord.BetaRecipientAccept{
			InitRef:   initRef,
			Spender:   init.GetSpender(),
			Recipient: init.GetRecipient(),
			Amount:    init.GetAmount(),
			Notes:     init.GetNotes(),
		}
	})
}

// BetaReject - the recipient declines a spender's offer
func (node *Node) BetaReject(ctx context.Context, initRef transactionrecord.Link) (transactionrecord.Link, error) {
	reject := &transactionrecord.BetaRecipientReject{
		InitRef: initRef,
	}
	return node.commit(ctx, reject, func() error {
		_, err := node.openInit(initRef, transactionrecord.BetaSpenderInitTag, node.isRecipient)
		return err
	})
}

// BetaWithdraw - the spender cancels an offer that was not yet taken
func (node *Node) BetaWithdraw(ctx context.Context, initRef transactionrecord.Link) (transactionrecord.Link, error) {
	withdraw := &transactionrecord.BetaSpenderWithdraw{
		InitRef: initRef,
	}
	return node.commit(ctx, withdraw, func() error {
		_, err := node.openInit(initRef, transactionrecord.BetaSpenderInitTag, node.isSpender)
		return err
	})
}

func checkProposal(spender *account.Account, recipient *account.Account, value amount.Amount) error {
	if nil == spender || nil == recipient {
		return fault.MissingParameters
	}
	if spender.Equal(recipient) {
		return fault.SameParties
	}
	if value.IsNegative() {
		return fault.NegativeTransferAmount
	}
	return nil
}

func (node *Node) isSpender(init transactionrecord.Transfer) error {
	if !node.identity.Equal(init.GetSpender()) {
		return fault.NotSpender
	}
	return nil
}

func (node *Node) isRecipient(init transactionrecord.Transfer) error {
	if !node.identity.Equal(init.GetRecipient()) {
		return fault.NotRecipient
	}
	return nil
}

// fetch an init, check the caller's role, then that it is unresolved
// and no accept of it is in flight
//
// must be called with the node lock held
func (node *Node) openInit(initRef transactionrecord.Link, kind transactionrecord.TagType, authorize func(transactionrecord.Transfer) error) (transactionrecord.Transfer, error) {
	init, err := node.getInit(initRef, kind)
	if nil != err {
		return nil, err
	}
	err = authorize(init)
	if nil != err {
		node.log.Warnf("init: %s  refused: %s", initRef, err)
		return nil, err
	}
	open, err := node.isOpen(initRef)
	if nil != err {
		return nil, err
	}
	if !open {
		return nil, fault.InitNotOpen
	}
	if node.accepting[initRef] {
		return nil, fault.ResolutionInProgress
	}
	return init, nil
}

func (node *Node) getInit(initRef transactionrecord.Link, kind transactionrecord.TagType) (transactionrecord.Transfer, error) {
	entry, err := node.store.Get(initRef)
	if fault.EntryNotFound == err {
		return nil, fault.InitNotFound
	}
	if nil != err {
		return nil, err
	}
	if kind != entry.Header.Kind {
		return nil, fault.KindIsNotInit
	}
	init, ok := entry.Transaction.(transactionrecord.Transfer)
	if !ok {
		return nil, fault.KindIsNotInit
	}
	return init, nil
}

// an init is open while no terminal record refers to it
func (node *Node) isOpen(initRef transactionrecord.Link) (bool, error) {
	items, err := node.index.GetLinks(initRef, notify.Tag)
	if nil != err {
		return false, err
	}
	for _, item := range items {
		if !item.Kind.IsTerminal() {
			continue
		}
		if f, ok := item.Record.(transactionrecord.Follower); ok && initRef == f.GetInitRef() {
			return false, nil
		}
	}
	return true, nil
}
