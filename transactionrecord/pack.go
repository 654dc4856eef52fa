// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"unicode/utf8"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/util"
)

// Pack AlphaRecipientInit
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure, which is
// what signing uses
func (init *AlphaRecipientInit) Pack(address *account.Account) (Packed, error) {
	return (*Proposal)(init).pack(AlphaRecipientInitTag, address)
}

// Pack BetaSpenderInit
func (init *BetaSpenderInit) Pack(address *account.Account) (Packed, error) {
	return (*Proposal)(init).pack(BetaSpenderInitTag, address)
}

// Pack AlphaSpenderAccept
//
// the countersignature (if present) covers the signed bytes and is
// appended last
func (accept *AlphaSpenderAccept) Pack(address *account.Account) (Packed, error) {
	return (*Settlement)(accept).pack(AlphaSpenderAcceptTag, address, accept.Recipient)
}

// Pack BetaRecipientAccept
func (accept *BetaRecipientAccept) Pack(address *account.Account) (Packed, error) {
	return (*Settlement)(accept).pack(BetaRecipientAcceptTag, address, accept.Spender)
}

// Pack AlphaSpenderReject
func (reject *AlphaSpenderReject) Pack(address *account.Account) (Packed, error) {
	return (*Closure)(reject).pack(AlphaSpenderRejectTag, address)
}

// Pack BetaRecipientReject
func (reject *BetaRecipientReject) Pack(address *account.Account) (Packed, error) {
	return (*Closure)(reject).pack(BetaRecipientRejectTag, address)
}

// Pack BetaSpenderWithdraw
func (withdraw *BetaSpenderWithdraw) Pack(address *account.Account) (Packed, error) {
	return (*Closure)(withdraw).pack(BetaSpenderWithdrawTag, address)
}

func (p *Proposal) message(tag TagType) (Packed, error) {
	if len(p.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if nil == p.Spender || nil == p.Recipient {
		return nil, fault.MissingParameters
	}
	if p.Spender.Equal(p.Recipient) {
		return nil, fault.SameParties
	}
	if p.Amount.IsNegative() {
		return nil, fault.NegativeTransferAmount
	}
	if utf8.RuneCountInString(p.Notes) > maxNotesLength {
		return nil, fault.NotesTooLong
	}

	message := util.ToVarint64(uint64(tag))
	message = appendAccount(message, p.Spender)
	message = appendAccount(message, p.Recipient)
	message = appendString(message, p.Amount.String())
	message = appendString(message, p.Notes)
	message = appendUint64(message, p.Nonce)
	return message, nil
}

func (p *Proposal) pack(tag TagType, address *account.Account) (Packed, error) {
	if nil == address {
		return nil, fault.MissingParameters
	}
	message, err := p.message(tag)
	if nil != err {
		return nil, err
	}

	err = address.CheckSignature(message, p.Signature)
	if nil != err {
		return message, err
	}
	return appendBytes(message, p.Signature), nil
}

func (s *Settlement) message(tag TagType) (Packed, error) {
	if len(s.Signature) > maxSignatureLength || len(s.Countersignature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if nil == s.Spender || nil == s.Recipient || s.InitRef.IsZero() {
		return nil, fault.MissingParameters
	}
	if s.Spender.Equal(s.Recipient) {
		return nil, fault.SameParties
	}
	if s.Amount.IsNegative() {
		return nil, fault.NegativeTransferAmount
	}
	if utf8.RuneCountInString(s.Notes) > maxNotesLength {
		return nil, fault.NotesTooLong
	}

	message := util.ToVarint64(uint64(tag))
	message = appendBytes(message, s.InitRef[:])
	message = appendAccount(message, s.Spender)
	message = appendAccount(message, s.Recipient)
	message = appendString(message, s.Amount.String())
	message = appendString(message, s.Notes)
	return message, nil
}

func (s *Settlement) pack(tag TagType, address *account.Account, countersigner *account.Account) (Packed, error) {
	if nil == address {
		return nil, fault.MissingParameters
	}
	message, err := s.message(tag)
	if nil != err {
		return nil, err
	}

	err = address.CheckSignature(message, s.Signature)
	if nil != err {
		return message, err
	}
	signed := appendBytes(message, s.Signature)
	if 0 == len(s.Countersignature) {
		return signed, nil
	}

	err = countersigner.CheckSignature(signed, s.Countersignature)
	if nil != err {
		return signed, err
	}
	return appendBytes(signed, s.Countersignature), nil
}

func (c *Closure) message(tag TagType) (Packed, error) {
	if len(c.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if c.InitRef.IsZero() {
		return nil, fault.MissingParameters
	}

	message := util.ToVarint64(uint64(tag))
	message = appendBytes(message, c.InitRef[:])
	return message, nil
}

func (c *Closure) pack(tag TagType, address *account.Account) (Packed, error) {
	if nil == address {
		return nil, fault.MissingParameters
	}
	message, err := c.message(tag)
	if nil != err {
		return nil, err
	}

	err = address.CheckSignature(message, c.Signature)
	if nil != err {
		return message, err
	}
	return appendBytes(message, c.Signature), nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an address to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	return appendBytes(buffer, address.Bytes())
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, util.ToVarint64(value)...)
}
