// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"bytes"
	"context"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/messaging"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// sign an accept, have the init author countersign and commit it,
// then commit it here
//
// nothing is written locally unless the counterparty committed first.
// The init stays reserved while the request is out so that no other
// resolution of it starts here; the node lock is not held meanwhile
func (node *Node) accept(ctx context.Context, initRef transactionrecord.Link, kind transactionrecord.TagType, authorize func(transactionrecord.Transfer) error, build func(transactionrecord.Transfer) transactionrecord.Countersigned) (transactionrecord.Link, error) {
	accept, packed, err := node.draft(initRef, kind, authorize, build)
	if nil != err {
		return transactionrecord.Link{}, err
	}
	defer node.release(initRef)

	counterparty := accept.Countersigner()
	message, err := messaging.NewMessage(messaging.Countersign, node.identity, &messaging.CountersignRequest{
		Record: packed,
	})
	if nil != err {
		return transactionrecord.Link{}, err
	}

	rctx, cancel := context.WithTimeout(ctx, requestTimeout)
	reply, err := node.messenger.Send(rctx, counterparty, message)
	cancel()
	if nil != err {
		node.log.Warnf("countersign: %s  to: %s  error: %s", initRef, counterparty, err)
		return transactionrecord.Link{}, fault.Collaborator("countersign", err)
	}

	var result messaging.CountersignReply
	err = reply.Decode(&result)
	if nil != err {
		node.log.Warnf("countersign: %s  refused by: %s  error: %s", initRef, counterparty, err)
		return transactionrecord.Link{}, err
	}

	countersigned := result.Record
	err = checkCountersigned(packed, countersigned)
	if nil != err {
		return transactionrecord.Link{}, err
	}

	entry, parties, err := node.settle(countersigned)
	if nil != err {
		// the counterparty holds a record this chain refused
		node.log.Criticalf("accept: %s  committed by: %s  refused here: %s", countersigned.MakeLink(), counterparty, err)
		return transactionrecord.Link{}, err
	}

	node.deliver(ctx, entry.Link, parties)
	return entry.Link, nil
}

// check the init, sign the accept and dry-run it, then reserve the init
func (node *Node) draft(initRef transactionrecord.Link, kind transactionrecord.TagType, authorize func(transactionrecord.Transfer) error, build func(transactionrecord.Transfer) transactionrecord.Countersigned) (transactionrecord.Countersigned, transactionrecord.Packed, error) {
	node.Lock()
	defer node.Unlock()

	init, err := node.openInit(initRef, kind, authorize)
	if nil != err {
		return nil, nil, err
	}

	accept := build(init)
	packed, err := transactionrecord.Sign(accept, node.key)
	if nil != err {
		return nil, nil, err
	}

	err = node.store.DryRun(node.key, packed, node.now())
	if nil != err {
		return nil, nil, err
	}

	node.accepting[initRef] = true
	return accept, packed, nil
}

func (node *Node) release(initRef transactionrecord.Link) {
	node.Lock()
	delete(node.accepting, initRef)
	node.Unlock()
}

func (node *Node) settle(countersigned transactionrecord.Packed) (*chain.Entry, []*account.Account, error) {
	node.Lock()
	defer node.Unlock()

	entry, err := node.store.Commit(node.key, countersigned, node.now())
	if nil != err {
		return nil, nil, err
	}
	return entry, node.linkAll(entry), nil
}

// the reply must be exactly the record sent plus a valid countersignature
func checkCountersigned(signed transactionrecord.Packed, countersigned transactionrecord.Packed) error {
	if len(countersigned) <= len(signed) || !bytes.HasPrefix(countersigned, signed) {
		return fault.CountersignRefused
	}
	tx, n, err := countersigned.Unpack()
	if nil != err {
		return err
	}
	if n != len(countersigned) {
		return fault.NotTransactionPack
	}
	accept, ok := tx.(transactionrecord.Countersigned)
	if !ok || 0 == len(accept.GetCountersignature()) {
		return fault.CountersignatureMissing
	}
	return nil
}

// countersign request from the accepting party, the node lock is held
//
// the init author checks the accept against its own init, then
// commits the countersigned record before replying
func (node *Node) countersign(message *messaging.Message) (interface{}, error) {
	var request messaging.CountersignRequest
	err := message.Decode(&request)
	if nil != err {
		return nil, err
	}

	tx, n, err := request.Record.Unpack()
	if nil != err {
		return nil, err
	}
	if n != len(request.Record) {
		return nil, fault.NotTransactionPack
	}
	accept, ok := tx.(transactionrecord.Countersigned)
	if !ok || 0 != len(accept.GetCountersignature()) {
		return nil, fault.CountersignRefused
	}
	if !node.identity.Equal(accept.Countersigner()) || !accept.Author().Equal(message.From) {
		return nil, fault.NotPartyToTransaction
	}

	initRef := accept.GetInitRef()
	init, err := node.getInit(initRef, accept.Tag().InitTag())
	if nil != err {
		return nil, err
	}
	if !node.identity.Equal(init.Author()) || !sameTerms(init, accept) {
		node.log.Warnf("countersign: %s  from: %s  terms differ", initRef, message.From)
		return nil, fault.CountersignRefused
	}

	open, err := node.isOpen(initRef)
	if nil != err {
		return nil, err
	}
	if !open {
		return nil, fault.InitNotOpen
	}

	packed, err := transactionrecord.Countersign(accept, node.key)
	if nil != err {
		return nil, err
	}
	entry, err := node.store.Commit(node.key, packed, node.now())
	if nil != err {
		return nil, err
	}

	// the accepting party delivers its own copy, nothing to send here
	node.linkAll(entry)

	node.log.Infof("countersigned: %s  for: %s", entry.Link, message.From)
	return &messaging.CountersignReply{
		Record: packed,
	}, nil
}

func sameTerms(init transactionrecord.Transfer, accept transactionrecord.Transfer) bool {
	return init.GetSpender().Equal(accept.GetSpender()) &&
		init.GetRecipient().Equal(accept.GetRecipient()) &&
		0 == init.GetAmount().Cmp(accept.GetAmount()) &&
		init.GetNotes() == accept.GetNotes()
}
