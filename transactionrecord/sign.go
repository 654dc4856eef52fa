// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
)

// Sign - sign a record with the author's key and return the packed record
//
// any previous signature or countersignature is discarded
func Sign(tx Transaction, key *account.PrivateKey) (Packed, error) {
	if nil == tx || nil == key {
		return nil, fault.MissingParameters
	}
	setSignatures(tx, nil, nil)

	signer := key.Account()
	message, err := tx.Pack(signer)
	if fault.InvalidSignature != err {
		if nil == err {
			err = fault.InvalidSignature
		}
		return nil, err
	}

	setSignatures(tx, key.Sign(message), nil)
	return tx.Pack(signer)
}

// Countersign - add the counterparty's signature to a signed accept
func Countersign(tx Countersigned, key *account.PrivateKey) (Packed, error) {
	if nil == tx || nil == key {
		return nil, fault.MissingParameters
	}
	if !tx.Countersigner().Equal(key.Account()) {
		return nil, fault.InvalidSignature
	}

	signature := signatureOf(tx)
	setSignatures(tx, signature, nil)
	signed, err := tx.Pack(tx.Author())
	if nil != err {
		return nil, err
	}

	setSignatures(tx, signature, key.Sign(signed))
	return tx.Pack(tx.Author())
}

func signatureOf(tx Transaction) account.Signature {
	switch t := tx.(type) {
	case *AlphaSpenderAccept:
		return t.Signature
	case *BetaRecipientAccept:
		return t.Signature
	default:
		return nil
	}
}

func setSignatures(tx Transaction, signature account.Signature, countersignature account.Signature) {
	switch t := tx.(type) {
	case *AlphaRecipientInit:
		t.Signature = signature
	case *AlphaSpenderAccept:
		t.Signature = signature
		t.Countersignature = countersignature
	case *AlphaSpenderReject:
		t.Signature = signature
	case *BetaSpenderInit:
		t.Signature = signature
	case *BetaRecipientAccept:
		t.Signature = signature
		t.Countersignature = countersignature
	case *BetaRecipientReject:
		t.Signature = signature
	case *BetaSpenderWithdraw:
		t.Signature = signature
	}
}
