// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/pending"
	"github.com/mutualcredit/transactord/rpc/transactor"
	"github.com/mutualcredit/transactord/transactionrecord"
	node "github.com/mutualcredit/transactord/transactor"
)

// Protocol - which of the two proposal flows a command uses
type Protocol string

// the two protocols
const (
	Alpha Protocol = "Alpha"
	Beta  Protocol = "Beta"
)

// GetInfo - identity, limits and counters of the node
func (client *Client) GetInfo() (*transactor.InfoReply, error) {
	var reply transactor.InfoReply
	if err := client.call("Transactor.Info", transactor.InfoArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetBalance - replayed balance and accrued fee
func (client *Client) GetBalance() (*transactor.BalanceReply, error) {
	var reply transactor.BalanceReply
	if err := client.call("Transactor.Balance", transactor.BalanceArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetPending - open proposals
func (client *Client) GetPending() (*pending.Pending, error) {
	var reply pending.Pending
	if err := client.call("Transactor.Pending", transactor.PendingArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetTransactions - one page of completed transfers
func (client *Client) GetTransactions(start uint64, count int) (*transactor.TransactionsReply, error) {
	arguments := transactor.TransactionsArguments{
		Start: start,
		Count: count,
	}
	var reply transactor.TransactionsReply
	if err := client.call("Transactor.Transactions", arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetRecord - one record by link
func (client *Client) GetRecord(link transactionrecord.Link) (*node.Record, error) {
	var reply node.Record
	if err := client.call("Transactor.Get", transactor.GetArguments{Link: link}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Init - start a proposal with the counterparty
func (client *Client) Init(protocol Protocol, counterparty *account.Account, value string, notes string) (*transactor.LinkReply, error) {
	arguments := transactor.InitArguments{
		Counterparty: counterparty,
		Amount:       value,
		Notes:        notes,
	}
	var reply transactor.LinkReply
	if err := client.call("Transactor."+string(protocol)+"Init", arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Resolve - accept, reject or withdraw an open proposal
//
// action is one of Accept, Reject or Withdraw
func (client *Client) Resolve(protocol Protocol, action string, initRef transactionrecord.Link) (*transactor.LinkReply, error) {
	arguments := transactor.ResolveArguments{
		InitRef: initRef,
	}
	var reply transactor.LinkReply
	if err := client.call("Transactor."+string(protocol)+action, arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
