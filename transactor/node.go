// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/ledger"
	"github.com/mutualcredit/transactord/messagebus"
	"github.com/mutualcredit/transactord/messaging"
	"github.com/mutualcredit/transactord/notify"
	"github.com/mutualcredit/transactord/storage"
	"github.com/mutualcredit/transactord/transactionrecord"
	"github.com/mutualcredit/transactord/validation"
)

const (
	requestTimeout = 10 * time.Second
	retryInterval  = 30 * time.Second
)

// Node - a participant and everything it stores
//
// the lock covers store and index work only, it is never held while a
// message is sent to another node
type Node struct {
	sync.Mutex

	log        *logger.L
	key        *account.PrivateKey
	identity   *account.Account
	store      *chain.Store
	index      *notify.Index
	properties ledger.Properties
	messenger  messaging.Messenger
	retries    *messagebus.Queue

	// inits with an accept waiting for its countersignature
	accepting map[transactionrecord.Link]bool

	// replaceable in tests
	clock func() time.Time
}

// New - a node for the key's identity over an opened database
func New(key *account.PrivateKey, database *storage.Database, properties ledger.Properties, messenger messaging.Messenger) (*Node, error) {
	if nil == key || nil == database || nil == properties || nil == messenger {
		return nil, fault.MissingParameters
	}

	store := chain.New(database, validation.New(properties))

	node := &Node{
		log:        logger.New("transactor"),
		key:        key,
		identity:   key.Account(),
		store:      store,
		index:      notify.New(database, store),
		properties: properties,
		messenger:  messenger,
		retries:    messagebus.NewQueue(messagebus.DefaultQueueSize),
		accepting:  make(map[transactionrecord.Link]bool),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	node.log.Infof("identity: %s", node.identity)
	return node, nil
}

// Identity - the account this node acts for
func (node *Node) Identity() *account.Account {
	return node.identity
}

func (node *Node) now() time.Time {
	return node.clock()
}

// random nonce so that equal proposals get distinct links
func nonce() (uint64, error) {
	var b [8]byte
	_, err := rand.Read(b[:])
	if nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}
