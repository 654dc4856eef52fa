// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/counter"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/ledger"
	"github.com/mutualcredit/transactord/pending"
	"github.com/mutualcredit/transactord/rpc/ratelimit"
	"github.com/mutualcredit/transactord/transactionrecord"
	node "github.com/mutualcredit/transactord/transactor"
)

//go:generate mockgen -source=transactor.go -destination=../mocks/participant.go -package=mocks Participant

const (
	rateLimitTransactor = 200
	rateBurstTransactor = 100

	// limit for count
	maximumTransactions = 100

	// bound on a remote countersign plus local commit
	operationTimeout = 30 * time.Second
)

// Participant - the node operations exposed over RPC
type Participant interface {
	Identity() *account.Account
	SystemInfo() (*node.Info, error)
	LedgerState() (ledger.State, error)
	ListPending() (*pending.Pending, error)
	Transactions() ([]ledger.Transfer, error)
	Get(transactionrecord.Link) (*node.Record, error)
	Queued() int

	AlphaInit(context.Context, *account.Account, amount.Amount, string) (transactionrecord.Link, error)
	AlphaAccept(context.Context, transactionrecord.Link) (transactionrecord.Link, error)
	AlphaReject(context.Context, transactionrecord.Link) (transactionrecord.Link, error)
	BetaInit(context.Context, *account.Account, amount.Amount, string) (transactionrecord.Link, error)
	BetaAccept(context.Context, transactionrecord.Link) (transactionrecord.Link, error)
	BetaReject(context.Context, transactionrecord.Link) (transactionrecord.Link, error)
	BetaWithdraw(context.Context, transactionrecord.Link) (transactionrecord.Link, error)
}

// Transactor - type for RPC calls
type Transactor struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Start       time.Time
	Version     string
	Participant Participant
	counter     *counter.Counter
}

// New - create the RPC service for one node
func New(log *logger.L, participant Participant, start time.Time, version string, counter *counter.Counter) *Transactor {
	return &Transactor{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitTransactor, rateBurstTransactor),
		Start:       start,
		Version:     version,
		Participant: participant,
		counter:     counter,
	}
}

// Info
// ----

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	node.Info
	RPCs    uint64 `json:"rpcs"`
	Queued  int    `json:"queued"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info - identity, limits and fee factor of this node
func (t *Transactor) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	info, err := t.Participant.SystemInfo()
	if nil != err {
		return err
	}

	reply.Info = *info
	reply.RPCs = t.counter.Uint64()
	reply.Queued = t.Participant.Queued()
	reply.Version = t.Version
	reply.Uptime = time.Since(t.Start).String()
	return nil
}

// Balance
// -------

// BalanceArguments - empty arguments for balance request
type BalanceArguments struct{}

// BalanceReply - replayed ledger state of this node
type BalanceReply struct {
	Identity *account.Account `json:"identity"`
	ledger.StateRepr
}

// Balance - replay this node's chain into a balance and accrued fee
func (t *Transactor) Balance(_ *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	state, err := t.Participant.LedgerState()
	if nil != err {
		return err
	}

	reply.Identity = t.Participant.Identity()
	reply.StateRepr = state.Repr()
	return nil
}

// Pending
// -------

// PendingArguments - empty arguments for pending request
type PendingArguments struct{}

// Pending - open proposals notified to this node
func (t *Transactor) Pending(_ *PendingArguments, reply *pending.Pending) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	p, err := t.Participant.ListPending()
	if nil != err {
		return err
	}
	*reply = *p
	return nil
}

// Transactions
// ------------

// TransactionsArguments - page of the completed transfers
type TransactionsArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// TransactionsReply - completed transfers and the next start
type TransactionsReply struct {
	Transfers []ledger.Transfer `json:"transfers"`
	NextStart uint64            `json:"nextStart,string"`
}

// Transactions - the node's completed transfers in time order
func (t *Transactor) Transactions(arguments *TransactionsArguments, reply *TransactionsReply) error {
	if err := ratelimit.LimitN(t.Limiter, arguments.Count, maximumTransactions); nil != err {
		return err
	}

	transfers, err := t.Participant.Transactions()
	if nil != err {
		return err
	}

	start := arguments.Start
	if start > uint64(len(transfers)) {
		start = uint64(len(transfers))
	}
	end := start + uint64(arguments.Count)
	if end > uint64(len(transfers)) {
		end = uint64(len(transfers))
	}

	reply.Transfers = transfers[start:end]
	reply.NextStart = end
	return nil
}

// Get
// ---

// GetArguments - link of the record to fetch
type GetArguments struct {
	Link transactionrecord.Link `json:"link"`
}

// Get - one record with its kind and chain position
func (t *Transactor) Get(arguments *GetArguments, reply *node.Record) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Link.IsZero() {
		return fault.MissingParameters
	}

	record, err := t.Participant.Get(arguments.Link)
	if nil != err {
		return err
	}
	*reply = *record
	return nil
}

// Proposals
// ---------

// InitArguments - the counterparty and terms of a new proposal
type InitArguments struct {
	Counterparty *account.Account `json:"counterparty"`
	Amount       string           `json:"amount"` // canonical hex
	Notes        string           `json:"notes"`
}

// ResolveArguments - the init a terminal record refers to
type ResolveArguments struct {
	InitRef transactionrecord.Link `json:"initRef"`
}

// LinkReply - link of the record just committed
type LinkReply struct {
	Link transactionrecord.Link `json:"link"`
}

type initFunc func(context.Context, *account.Account, amount.Amount, string) (transactionrecord.Link, error)
type resolveFunc func(context.Context, transactionrecord.Link) (transactionrecord.Link, error)

// AlphaInit - recipient proposes that the counterparty pays
func (t *Transactor) AlphaInit(arguments *InitArguments, reply *LinkReply) error {
	return t.propose("Transactor.AlphaInit", t.Participant.AlphaInit, arguments, reply)
}

// AlphaAccept - spender accepts an alpha proposal
func (t *Transactor) AlphaAccept(arguments *ResolveArguments, reply *LinkReply) error {
	return t.resolve("Transactor.AlphaAccept", t.Participant.AlphaAccept, arguments, reply)
}

// AlphaReject - spender refuses an alpha proposal
func (t *Transactor) AlphaReject(arguments *ResolveArguments, reply *LinkReply) error {
	return t.resolve("Transactor.AlphaReject", t.Participant.AlphaReject, arguments, reply)
}

// BetaInit - spender offers to pay the counterparty
func (t *Transactor) BetaInit(arguments *InitArguments, reply *LinkReply) error {
	return t.propose("Transactor.BetaInit", t.Participant.BetaInit, arguments, reply)
}

// BetaAccept - recipient accepts a beta offer
func (t *Transactor) BetaAccept(arguments *ResolveArguments, reply *LinkReply) error {
	return t.resolve("Transactor.BetaAccept", t.Participant.BetaAccept, arguments, reply)
}

// BetaReject - recipient refuses a beta offer
func (t *Transactor) BetaReject(arguments *ResolveArguments, reply *LinkReply) error {
	return t.resolve("Transactor.BetaReject", t.Participant.BetaReject, arguments, reply)
}

// BetaWithdraw - spender cancels its own beta offer
func (t *Transactor) BetaWithdraw(arguments *ResolveArguments, reply *LinkReply) error {
	return t.resolve("Transactor.BetaWithdraw", t.Participant.BetaWithdraw, arguments, reply)
}

func (t *Transactor) propose(name string, op initFunc, arguments *InitArguments, reply *LinkReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Counterparty || "" == arguments.Amount {
		return fault.MissingParameters
	}

	t.Log.Infof("%s: %+v", name, arguments)

	value, err := amount.Parse(arguments.Amount)
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	link, err := op(ctx, arguments.Counterparty, value, arguments.Notes)
	if nil != err {
		t.Log.Warnf("%s: error: %s", name, err)
		return err
	}
	reply.Link = link
	return nil
}

func (t *Transactor) resolve(name string, op resolveFunc, arguments *ResolveArguments, reply *LinkReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.InitRef.IsZero() {
		return fault.MissingParameters
	}

	t.Log.Infof("%s: %v", name, arguments.InitRef)

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	link, err := op(ctx, arguments.InitRef)
	if nil != err {
		t.Log.Warnf("%s: error: %s", name, err)
		return err
	}
	reply.Link = link
	return nil
}
