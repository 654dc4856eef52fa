// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/fault"
)

// TagType - type code for transactions
type TagType uint64

// enumerate the possible transaction record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// protocol A: recipient proposes, spender accepts or rejects
	AlphaRecipientInitTag = TagType(iota)
	AlphaSpenderAcceptTag = TagType(iota)
	AlphaSpenderRejectTag = TagType(iota)

	// protocol B: spender offers, recipient accepts or rejects, spender may withdraw
	BetaSpenderInitTag     = TagType(iota)
	BetaRecipientAcceptTag = TagType(iota)
	BetaRecipientRejectTag = TagType(iota)
	BetaSpenderWithdrawTag = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// Protocol - the two competing transfer protocols
type Protocol int

const (
	Alpha Protocol = iota
	Beta
)

// Phase - step within a protocol
type Phase int

const (
	Init Phase = iota
	Accept
	Reject
	Withdraw
)

var tagNames = map[TagType]string{
	AlphaRecipientInitTag:  "alphaRecipientInit",
	AlphaSpenderAcceptTag:  "alphaSpenderAccept",
	AlphaSpenderRejectTag:  "alphaSpenderReject",
	BetaSpenderInitTag:     "betaSpenderInit",
	BetaRecipientAcceptTag: "betaRecipientAccept",
	BetaRecipientRejectTag: "betaRecipientReject",
	BetaSpenderWithdrawTag: "betaSpenderWithdraw",
}

// Packed - packed records are just a byte slice
type Packed []byte

// Transaction - generic transaction interface
type Transaction interface {
	Tag() TagType
	Pack(signer *account.Account) (Packed, error)
}

// Transfer - implemented by the records that carry the value
type Transfer interface {
	Transaction
	GetSpender() *account.Account
	GetRecipient() *account.Account
	GetAmount() amount.Amount
	GetNotes() string
	Author() *account.Account
}

// Follower - implemented by every record that references an init
type Follower interface {
	Transaction
	GetInitRef() Link
}

// byte sizes for various fields
const (
	maxNotesLength     = 2048
	maxSignatureLength = 1024
	maxAccountLength   = 128
	maxAmountLength    = 13
)

// Proposal - the fields shared by both init records
type Proposal struct {
	Spender   *account.Account  `json:"spender"`   // base58
	Recipient *account.Account  `json:"recipient"` // base58
	Amount    amount.Amount     `json:"amount"`    // hex
	Notes     string            `json:"notes"`     // utf-8
	Nonce     uint64            `json:"nonce,string"`
	Signature account.Signature `json:"signature"` // hex
}

// Settlement - the fields shared by both accept records
//
// the accept copies amount and notes from its init; the author signs
// and the counterparty countersigns the signed bytes
type Settlement struct {
	InitRef          Link              `json:"initRef"`
	Spender          *account.Account  `json:"spender"`
	Recipient        *account.Account  `json:"recipient"`
	Amount           amount.Amount     `json:"amount"`
	Notes            string            `json:"notes"`
	Signature        account.Signature `json:"signature"`
	Countersignature account.Signature `json:"countersignature"`
}

// Closure - the fields shared by reject and withdraw records
//
// signed by the chain owner, carries no value
type Closure struct {
	InitRef   Link              `json:"initRef"`
	Signature account.Signature `json:"signature"`
}

// AlphaRecipientInit - created by the recipient
type AlphaRecipientInit Proposal

// AlphaSpenderAccept - created by the spender, countersigned by the recipient
type AlphaSpenderAccept Settlement

// AlphaSpenderReject - created by the spender
type AlphaSpenderReject Closure

// BetaSpenderInit - created by the spender
type BetaSpenderInit Proposal

// BetaRecipientAccept - created by the recipient, countersigned by the spender
type BetaRecipientAccept Settlement

// BetaRecipientReject - created by the recipient
type BetaRecipientReject Closure

// BetaSpenderWithdraw - created by the spender, cancels an unaccepted offer
type BetaSpenderWithdraw Closure

// String - kind name of the tag
func (tag TagType) String() string {
	if name, ok := tagNames[tag]; ok {
		return name
	}
	return "invalid"
}

// MarshalText - kind name for JSON
func (tag TagType) MarshalText() ([]byte, error) {
	if _, ok := tagNames[tag]; !ok {
		return nil, fault.UnknownRecordKind
	}
	return []byte(tag.String()), nil
}

// UnmarshalText - kind name from JSON
func (tag *TagType) UnmarshalText(s []byte) error {
	t, err := TagFromName(string(s))
	if nil != err {
		return err
	}
	*tag = t
	return nil
}

// TagFromName - reverse of String
func TagFromName(name string) (TagType, error) {
	for tag, n := range tagNames {
		if n == name {
			return tag, nil
		}
	}
	return NullTag, fault.UnknownRecordKind
}

// IsValid - one of the seven record kinds
func (tag TagType) IsValid() bool {
	return tag > NullTag && tag < InvalidTag
}

// Protocol - which protocol the record belongs to
func (tag TagType) Protocol() Protocol {
	switch tag {
	case AlphaRecipientInitTag, AlphaSpenderAcceptTag, AlphaSpenderRejectTag:
		return Alpha
	default:
		return Beta
	}
}

// Phase - which step of the protocol the record represents
func (tag TagType) Phase() Phase {
	switch tag {
	case AlphaRecipientInitTag, BetaSpenderInitTag:
		return Init
	case AlphaSpenderAcceptTag, BetaRecipientAcceptTag:
		return Accept
	case BetaSpenderWithdrawTag:
		return Withdraw
	default:
		return Reject
	}
}

// IsInit - record opens a protocol instance
func (tag TagType) IsInit() bool {
	return tag.IsValid() && Init == tag.Phase()
}

// IsTerminal - record ends a protocol instance
func (tag TagType) IsTerminal() bool {
	return tag.IsValid() && Init != tag.Phase()
}

// IsLedger - record produces a ledger delta
func (tag TagType) IsLedger() bool {
	return tag.IsValid() && Accept == tag.Phase()
}

// InitTag - the init kind of the record's protocol
func (tag TagType) InitTag() TagType {
	if Alpha == tag.Protocol() {
		return AlphaRecipientInitTag
	}
	return BetaSpenderInitTag
}

// LedgerTags - the record kinds that replay considers
func LedgerTags() []TagType {
	return []TagType{AlphaSpenderAcceptTag, BetaRecipientAcceptTag}
}

func (p Packed) String() string {
	return hex.EncodeToString(p)
}

// MarshalText - hex for JSON transport
func (p Packed) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(p)))
	hex.Encode(b, p)
	return b, nil
}

// UnmarshalText - hex from JSON transport
func (p *Packed) UnmarshalText(s []byte) error {
	b := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(b, s)
	if nil != err {
		return fault.NotTransactionPack
	}
	*p = b[:n]
	return nil
}
