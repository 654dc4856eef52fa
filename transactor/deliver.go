// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"context"
	"time"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/messagebus"
	"github.com/mutualcredit/transactord/messaging"
	"github.com/mutualcredit/transactord/notify"
	"github.com/mutualcredit/transactord/transactionrecord"
)

const deliverCommand = "deliver"

// sign and commit a record on this node's chain, then deliver it
//
// check runs under the node lock just before the commit
func (node *Node) commit(ctx context.Context, tx transactionrecord.Transaction, check func() error) (transactionrecord.Link, error) {
	entry, parties, err := node.record(tx, check)
	if nil != err {
		return transactionrecord.Link{}, err
	}
	node.deliver(ctx, entry.Link, parties)
	return entry.Link, nil
}

func (node *Node) record(tx transactionrecord.Transaction, check func() error) (*chain.Entry, []*account.Account, error) {
	node.Lock()
	defer node.Unlock()

	if nil != check {
		err := check()
		if nil != err {
			return nil, nil, err
		}
	}

	packed, err := transactionrecord.Sign(tx, node.key)
	if nil != err {
		return nil, nil, err
	}
	entry, err := node.store.Commit(node.key, packed, node.now())
	if nil != err {
		return nil, nil, err
	}
	return entry, node.linkAll(entry), nil
}

// link a committed record, failures are only logged as the record is
// durable already
//
// must be called with the node lock held
func (node *Node) linkAll(entry *chain.Entry) []*account.Account {
	parties, err := node.link(entry)
	if nil != err {
		node.log.Errorf("link: %s  error: %s", entry.Link, err)
	}
	return parties
}

// deliver a committed record to the other parties, without the node lock
//
// a party that cannot be reached, or lacks the init a closure refers
// to, gets the record again from Redeliver
func (node *Node) deliver(ctx context.Context, link transactionrecord.Link, parties []*account.Account) {
	for _, party := range parties {
		if node.identity.Equal(party) {
			continue
		}
		err := node.send(ctx, party, link)
		if nil == err {
			continue
		}
		node.log.Warnf("deliver: %s  to: %s  error: %s", link, party, err)
		if retryable(err) {
			node.queue(party, link)
		}
	}
}

func retryable(err error) bool {
	return fault.IsErrCollaborator(err) || fault.InitNotFound == err
}

// notification links: both parties and, for a terminal, its init
func (node *Node) link(entry *chain.Entry) ([]*account.Account, error) {
	parties := node.parties(entry.Transaction)

	bases := make([]notify.Base, 0, len(parties)+1)
	for _, party := range parties {
		bases = append(bases, party)
	}
	if f, ok := entry.Transaction.(transactionrecord.Follower); ok {
		bases = append(bases, f.GetInitRef())
	}

	for _, base := range bases {
		err := node.index.Link(base, entry.Link, notify.Tag)
		if nil != err {
			return parties, err
		}
	}
	return parties, nil
}

// the parties of a record; for a reject or withdraw they come from
// its init, if that is not known only this node is concerned
func (node *Node) parties(tx transactionrecord.Transaction) []*account.Account {
	switch t := tx.(type) {
	case transactionrecord.Transfer:
		return []*account.Account{t.GetSpender(), t.GetRecipient()}
	case transactionrecord.Follower:
		entry, err := node.store.Get(t.GetInitRef())
		if nil == err {
			if init, ok := entry.Transaction.(transactionrecord.Transfer); ok {
				return []*account.Account{init.GetSpender(), init.GetRecipient()}
			}
		}
	}
	return []*account.Account{node.identity}
}

func (node *Node) isParty(tx transactionrecord.Transaction) bool {
	for _, party := range node.parties(tx) {
		if node.identity.Equal(party) {
			return true
		}
	}
	return false
}

// send one record of this node's chain with the chain before it
func (node *Node) send(ctx context.Context, target *account.Account, link transactionrecord.Link) error {
	entry, err := node.store.Member(node.identity, link)
	if nil != err {
		return err
	}
	pkg, err := node.store.Package(node.identity)
	if nil != err {
		return err
	}

	message, err := messaging.NewMessage(messaging.Deliver, node.identity, &messaging.Delivery{
		Header:  entry.Header,
		Record:  entry.Packed,
		Package: pkg.Prefix(entry.Header.Sequence),
	})
	if nil != err {
		return err
	}

	rctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reply, err := node.messenger.Send(rctx, target, message)
	if nil != err {
		return fault.Collaborator("deliver", err)
	}
	err = reply.Err()
	if nil != err {
		return err
	}

	node.log.Debugf("delivered: %s  to: %s", link, target)
	return nil
}

// a record from another node's chain
func (node *Node) receive(message *messaging.Message) (interface{}, error) {
	var delivery messaging.Delivery
	err := message.Decode(&delivery)
	if nil != err {
		return nil, err
	}
	if nil == delivery.Header || nil == delivery.Package {
		return nil, fault.MissingParameters
	}

	tx, _, err := delivery.Record.Unpack()
	if nil != err {
		return nil, err
	}
	if !node.isParty(tx) {
		return nil, fault.NotPartyToTransaction
	}

	entry, err := node.store.Put(delivery.Package, delivery.Header, delivery.Record)
	if nil != err {
		return nil, err
	}

	_, err = node.link(entry)
	if nil != err {
		return nil, err
	}

	node.log.Infof("received: %s  kind: %s  from: %s", entry.Link, entry.Header.Kind, delivery.Header.Author)
	return entry.Link, nil
}

// hold a failed delivery for Redeliver
func (node *Node) queue(target *account.Account, link transactionrecord.Link) {
	if !node.retries.Send(deliverCommand, target.Bytes(), link.Bytes()) {
		node.log.Errorf("deliver: %s  to: %s  error: %s", link, target, fault.DeliveryQueueFull)
	}
}

// Queued - number of deliveries waiting to be retried
func (node *Node) Queued() int {
	return node.retries.Len()
}

// Redeliver - retry every queued delivery once
//
// returns the number delivered; failures stay queued
func (node *Node) Redeliver(ctx context.Context) int {
	delivered := 0
	n := node.retries.Len()

loop:
	for i := 0; i < n; i += 1 {
		var m messagebus.Message
		select {
		case m = <-node.retries.Chan():
		default:
			break loop
		}
		if deliverCommand != m.Command || 2 != len(m.Parameters) {
			continue loop
		}

		target, err := account.AccountFromBytes(m.Parameters[0])
		if nil != err {
			node.log.Errorf("redeliver: bad target: %s", err)
			continue loop
		}
		link, err := transactionrecord.LinkFromBytes(m.Parameters[1])
		if nil != err {
			node.log.Errorf("redeliver: bad link: %s", err)
			continue loop
		}

		err = node.send(ctx, target, link)
		switch {
		case nil == err:
			delivered += 1
		case retryable(err):
			node.queue(target, link)
		default:
			node.log.Errorf("redeliver: %s  to: %s  dropped: %s", link, target, err)
		}
	}
	return delivered
}

// Run - background retry of failed deliveries
func (node *Node) Run(args interface{}, shutdown <-chan struct{}) {
	log := node.log
	log.Info("starting…")

	interval := retryInterval
	if d, ok := args.(time.Duration); ok && d > 0 {
		interval = d
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			if 0 == node.Queued() {
				continue loop
			}
			n := node.Redeliver(context.Background())
			log.Infof("redelivered: %d  waiting: %d", n, node.Queued())
		}
	}
	log.Info("stopped")
}
