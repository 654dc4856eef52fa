// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validation - admission checks run by the chain store before
// any record is written
//
// a record is checked against the chain it is to be appended to; for
// accept records the owner's ledger is replayed with the candidate
// appended. The local path reads the owner's chain from the store,
// the package path rebuilds it from a delivered package, and both feed
// the same delta derivation and replay so that every peer reaches the
// same decision for the same history
package validation

import (
	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/ledger"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// Validator - admission hook for chain stores
type Validator struct {
	log        *logger.L
	properties ledger.Properties
}

// New - validator reading the current limits from properties
func New(properties ledger.Properties) *Validator {
	return &Validator{
		log:        logger.New("validation"),
		properties: properties,
	}
}

// ValidateCommit - check a record the chain owner is appending
func (v *Validator) ValidateCommit(reader chain.Reader, header *chain.Header, packed transactionrecord.Packed) (err error) {
	defer v.failClosed("commit", &err)
	return v.local(reader, header, packed, false)
}

// ValidateDraft - ValidateCommit for an accept whose counterparty has
// not countersigned yet
func (v *Validator) ValidateDraft(reader chain.Reader, header *chain.Header, packed transactionrecord.Packed) (err error) {
	defer v.failClosed("draft", &err)
	return v.local(reader, header, packed, true)
}

func (v *Validator) local(reader chain.Reader, header *chain.Header, packed transactionrecord.Packed, draft bool) error {
	if nil == reader || nil == header || nil == header.Author {
		return fault.MissingParameters
	}
	owner := header.Author

	n, previous := reader.Head(owner)
	if n != header.Sequence || previous != header.Previous {
		return fault.WrongSequence
	}

	candidate, err := v.check(reader, owner, header, packed, draft)
	if nil != err {
		return err
	}
	if !header.Kind.IsLedger() {
		return nil
	}

	history, err := reader.Query(owner, transactionrecord.LedgerTags()...)
	if nil != err {
		return err
	}
	return v.replay(owner, history, candidate)
}

// ValidatePackage - check a foreign record using the delivered package
// of its author's prior chain
//
// the receiving store only resolves the init that a closure refers to,
// the ledger replay never reads it
func (v *Validator) ValidatePackage(reader chain.Reader, pkg *chain.Package, header *chain.Header, packed transactionrecord.Packed) (err error) {
	defer v.failClosed("package", &err)

	if nil == reader || nil == pkg || nil == header || nil == header.Author {
		return fault.MissingParameters
	}
	owner := pkg.Author

	entries, err := pkg.Verify()
	if nil != err {
		return err
	}
	err = pkg.Follows(header)
	if nil != err {
		return err
	}
	_, err = header.Pack()
	if nil != err {
		return err
	}

	candidate, err := v.check(reader, owner, header, packed, false)
	if nil != err {
		return err
	}
	if !header.Kind.IsLedger() {
		return nil
	}

	history := make([]*chain.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Header.Kind.IsLedger() {
			history = append(history, entry)
		}
	}
	return v.replay(owner, history, candidate)
}

// record level checks shared by both paths
func (v *Validator) check(reader chain.Reader, owner *account.Account, header *chain.Header, packed transactionrecord.Packed, draft bool) (*chain.Entry, error) {
	candidate, err := chain.NewEntry(header, packed)
	if nil != err {
		return nil, err
	}

	switch tx := candidate.Transaction.(type) {

	case *transactionrecord.AlphaRecipientInit, *transactionrecord.BetaSpenderInit:
		if !owner.Equal(tx.(transactionrecord.Transfer).Author()) {
			return nil, fault.WrongChainOwner
		}

	case *transactionrecord.AlphaSpenderAccept, *transactionrecord.BetaRecipientAccept:
		accept := tx.(transactionrecord.Countersigned)
		if !draft && 0 == len(accept.GetCountersignature()) {
			return nil, fault.CountersignatureMissing
		}
		if !owner.Equal(accept.Author()) && !owner.Equal(accept.Countersigner()) {
			return nil, fault.NotPartyToTransaction
		}

	case *transactionrecord.AlphaSpenderReject, *transactionrecord.BetaRecipientReject, *transactionrecord.BetaSpenderWithdraw:
		_, err := tx.Pack(owner)
		if fault.InvalidSignature == err {
			return nil, fault.WrongChainOwner
		}
		if nil != err {
			return nil, err
		}
		err = closes(reader, owner, tx.(transactionrecord.Follower))
		if nil != err {
			return nil, err
		}

	default:
		return nil, fault.UnknownRecordKind
	}

	return candidate, nil
}

// a closure needs its init and the owner in the closing role: the
// spender rejects a request or withdraws an offer, the recipient
// rejects an offer
func closes(reader chain.Reader, owner *account.Account, closure transactionrecord.Follower) error {
	entry, err := reader.Get(closure.GetInitRef())
	if fault.EntryNotFound == err {
		return fault.InitNotFound
	}
	if nil != err {
		return err
	}
	init, ok := entry.Transaction.(transactionrecord.Transfer)
	if !ok || closure.Tag().InitTag() != entry.Header.Kind {
		return fault.KindIsNotInit
	}

	if transactionrecord.BetaRecipientRejectTag == closure.Tag() {
		if !owner.Equal(init.GetRecipient()) {
			return fault.NotRecipient
		}
		return nil
	}
	if !owner.Equal(init.GetSpender()) {
		return fault.NotSpender
	}
	return nil
}

// replay the owner's history with the candidate appended
func (v *Validator) replay(owner *account.Account, history []*chain.Entry, candidate *chain.Entry) error {
	limits, err := v.properties.Limits()
	if nil != err {
		return err
	}

	deltas, err := ledger.Deltas(owner, append(history, candidate))
	if nil != err {
		return err
	}

	state, err := ledger.Replay(deltas, limits)
	if nil != err {
		return err
	}

	v.log.Debugf("owner: %s  candidate: %s  balance: %s  fee: %s", owner, candidate.Link, state.Balance, state.FeeOwed)
	return nil
}

// an unexpected failure is a refusal too
func (v *Validator) failClosed(path string, err *error) {
	if r := recover(); nil != r {
		v.log.Criticalf("%s validation panic: %v", path, r)
		*err = fault.ValidationFailed
	}
	if nil != *err {
		v.log.Infof("%s validation refused: %s", path, *err)
	}
}
