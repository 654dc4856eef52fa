// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"bytes"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/util"
)

// Unpack - turn a byte slice into a record
//
// init and accept records name their signers and are verified here;
// reject and withdraw records are signed by the chain owner, which the
// caller checks with Pack(owner)
//
// must cast result to correct type
//
// e.g.
//
//	switch tx := result.(type) {
//	case *transactionrecord.AlphaRecipientInit:
func (record Packed) Unpack() (t Transaction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			t = nil
			n = 0
			e = fault.NotTransactionPack
		}
	}()

	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.NotTransactionPack
	}
	tag := TagType(recordType)

	switch tag {

	case AlphaRecipientInitTag, BetaSpenderInitTag:
		p, count, err := unpackProposal(record, n)
		if nil != err {
			return nil, 0, err
		}
		n = count
		if AlphaRecipientInitTag == tag {
			t = (*AlphaRecipientInit)(p)
		} else {
			t = (*BetaSpenderInit)(p)
		}
		author := t.(Transfer).Author()
		return verified(t, author, record[:n])

	case AlphaSpenderAcceptTag, BetaRecipientAcceptTag:
		s, count, err := unpackSettlement(record, n)
		if nil != err {
			return nil, 0, err
		}
		n = count
		if AlphaSpenderAcceptTag == tag {
			t = (*AlphaSpenderAccept)(s)
		} else {
			t = (*BetaRecipientAccept)(s)
		}
		author := t.(Transfer).Author()
		return verified(t, author, record[:n])

	case AlphaSpenderRejectTag, BetaRecipientRejectTag, BetaSpenderWithdrawTag:
		c, count, err := unpackClosure(record, n)
		if nil != err {
			return nil, 0, err
		}
		n = count
		switch tag {
		case AlphaSpenderRejectTag:
			t = (*AlphaSpenderReject)(c)
		case BetaRecipientRejectTag:
			t = (*BetaRecipientReject)(c)
		default:
			t = (*BetaSpenderWithdraw)(c)
		}
		message, err := c.message(tag)
		if nil != err {
			return nil, 0, err
		}
		if !bytes.Equal(appendBytes(message, c.Signature), record[:n]) {
			return nil, 0, fault.NotTransactionPack
		}
		return t, n, nil

	default:
		return nil, 0, fault.UnknownRecordKind
	}
}

// re-pack to check the signatures and that the encoding is canonical
func verified(t Transaction, author *account.Account, record Packed) (Transaction, int, error) {
	packed, err := t.Pack(author)
	if nil != err {
		return nil, 0, err
	}
	if !bytes.Equal(packed, record) {
		return nil, 0, fault.NotTransactionPack
	}
	return t, len(record), nil
}

func unpackProposal(record Packed, n int) (*Proposal, int, error) {
	spender, n, err := readAccount(record, n)
	if nil != err {
		return nil, 0, err
	}
	recipient, n, err := readAccount(record, n)
	if nil != err {
		return nil, 0, err
	}
	value, n, err := readAmount(record, n)
	if nil != err {
		return nil, 0, err
	}
	notes, n, err := readString(record, n, maxNotesLength*utf8Max)
	if nil != err {
		return nil, 0, err
	}
	nonce, nonceLength := util.FromVarint64(record[n:])
	if 0 == nonceLength {
		return nil, 0, fault.NotTransactionPack
	}
	n += nonceLength
	signature, n, err := readSignature(record, n)
	if nil != err {
		return nil, 0, err
	}

	p := &Proposal{
		Spender:   spender,
		Recipient: recipient,
		Amount:    value,
		Notes:     notes,
		Nonce:     nonce,
		Signature: signature,
	}
	return p, n, nil
}

func unpackSettlement(record Packed, n int) (*Settlement, int, error) {
	initRef, n, err := readLink(record, n)
	if nil != err {
		return nil, 0, err
	}
	spender, n, err := readAccount(record, n)
	if nil != err {
		return nil, 0, err
	}
	recipient, n, err := readAccount(record, n)
	if nil != err {
		return nil, 0, err
	}
	value, n, err := readAmount(record, n)
	if nil != err {
		return nil, 0, err
	}
	notes, n, err := readString(record, n, maxNotesLength*utf8Max)
	if nil != err {
		return nil, 0, err
	}
	signature, n, err := readSignature(record, n)
	if nil != err {
		return nil, 0, err
	}

	// countersignature is optional and always last
	var countersignature account.Signature
	if n < len(record) {
		countersignature, n, err = readSignature(record, n)
		if nil != err {
			return nil, 0, err
		}
	}

	s := &Settlement{
		InitRef:          initRef,
		Spender:          spender,
		Recipient:        recipient,
		Amount:           value,
		Notes:            notes,
		Signature:        signature,
		Countersignature: countersignature,
	}
	return s, n, nil
}

func unpackClosure(record Packed, n int) (*Closure, int, error) {
	initRef, n, err := readLink(record, n)
	if nil != err {
		return nil, 0, err
	}
	signature, n, err := readSignature(record, n)
	if nil != err {
		return nil, 0, err
	}
	c := &Closure{
		InitRef:   initRef,
		Signature: signature,
	}
	return c, n, nil
}

// maximum bytes per rune in UTF-8
const utf8Max = 4

func readField(record Packed, n int, minimum int, maximum int) ([]byte, int, error) {
	length, offset := util.ClippedVarint64(record[n:], minimum, maximum)
	if 0 == offset || n+offset+length > len(record) {
		return nil, 0, fault.NotTransactionPack
	}
	n += offset
	field := make([]byte, length)
	copy(field, record[n:n+length])
	return field, n + length, nil
}

func readString(record Packed, n int, maximum int) (string, int, error) {
	field, n, err := readField(record, n, 0, maximum)
	if nil != err {
		return "", 0, err
	}
	return string(field), n, nil
}

func readAccount(record Packed, n int) (*account.Account, int, error) {
	field, n, err := readField(record, n, 1, maxAccountLength)
	if nil != err {
		return nil, 0, err
	}
	a, err := account.AccountFromBytes(field)
	if nil != err {
		return nil, 0, err
	}
	return a, n, nil
}

func readAmount(record Packed, n int) (amount.Amount, int, error) {
	field, n, err := readField(record, n, 1, maxAmountLength)
	if nil != err {
		return amount.Zero, 0, err
	}
	value, err := amount.Parse(string(field))
	if nil != err {
		return amount.Zero, 0, err
	}
	if value.IsNegative() {
		return amount.Zero, 0, fault.NegativeTransferAmount
	}
	return value, n, nil
}

func readLink(record Packed, n int) (Link, int, error) {
	field, n, err := readField(record, n, 1, LinkLength+1)
	if nil != err {
		return Link{}, 0, err
	}
	link, err := LinkFromBytes(field)
	if nil != err {
		return Link{}, 0, err
	}
	return link, n, nil
}

func readSignature(record Packed, n int) (account.Signature, int, error) {
	field, n, err := readField(record, n, 1, maxSignatureLength)
	if nil != err {
		return nil, 0, err
	}
	return account.Signature(field), n, nil
}
