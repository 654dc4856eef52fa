// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
)

// protocol A init

func (init *AlphaRecipientInit) Tag() TagType                   { return AlphaRecipientInitTag }
func (init *AlphaRecipientInit) GetSpender() *account.Account   { return init.Spender }
func (init *AlphaRecipientInit) GetRecipient() *account.Account { return init.Recipient }
func (init *AlphaRecipientInit) GetAmount() amount.Amount       { return init.Amount }
func (init *AlphaRecipientInit) GetNotes() string               { return init.Notes }
func (init *AlphaRecipientInit) Author() *account.Account       { return init.Recipient }

// protocol A accept

func (accept *AlphaSpenderAccept) Tag() TagType                   { return AlphaSpenderAcceptTag }
func (accept *AlphaSpenderAccept) GetInitRef() Link               { return accept.InitRef }
func (accept *AlphaSpenderAccept) GetSpender() *account.Account   { return accept.Spender }
func (accept *AlphaSpenderAccept) GetRecipient() *account.Account { return accept.Recipient }
func (accept *AlphaSpenderAccept) GetAmount() amount.Amount       { return accept.Amount }
func (accept *AlphaSpenderAccept) GetNotes() string               { return accept.Notes }
func (accept *AlphaSpenderAccept) Author() *account.Account       { return accept.Spender }

// Countersigner - the party that must countersign the accept
func (accept *AlphaSpenderAccept) Countersigner() *account.Account { return accept.Recipient }

// protocol A reject

func (reject *AlphaSpenderReject) Tag() TagType     { return AlphaSpenderRejectTag }
func (reject *AlphaSpenderReject) GetInitRef() Link { return reject.InitRef }

// protocol B init

func (init *BetaSpenderInit) Tag() TagType                   { return BetaSpenderInitTag }
func (init *BetaSpenderInit) GetSpender() *account.Account   { return init.Spender }
func (init *BetaSpenderInit) GetRecipient() *account.Account { return init.Recipient }
func (init *BetaSpenderInit) GetAmount() amount.Amount       { return init.Amount }
func (init *BetaSpenderInit) GetNotes() string               { return init.Notes }
func (init *BetaSpenderInit) Author() *account.Account       { return init.Spender }

// protocol B accept

func (accept *BetaRecipientAccept) Tag() TagType                   { return BetaRecipientAcceptTag }
func (accept *BetaRecipientAccept) GetInitRef() Link               { return accept.InitRef }
func (accept *BetaRecipientAccept) GetSpender() *account.Account   { return accept.Spender }
func (accept *BetaRecipientAccept) GetRecipient() *account.Account { return accept.Recipient }
func (accept *BetaRecipientAccept) GetAmount() amount.Amount       { return accept.Amount }
func (accept *BetaRecipientAccept) GetNotes() string               { return accept.Notes }
func (accept *BetaRecipientAccept) Author() *account.Account       { return accept.Recipient }

// Countersigner - the party that must countersign the accept
func (accept *BetaRecipientAccept) Countersigner() *account.Account { return accept.Spender }

// protocol B reject

func (reject *BetaRecipientReject) Tag() TagType     { return BetaRecipientRejectTag }
func (reject *BetaRecipientReject) GetInitRef() Link { return reject.InitRef }

// protocol B withdraw

func (withdraw *BetaSpenderWithdraw) Tag() TagType     { return BetaSpenderWithdrawTag }
func (withdraw *BetaSpenderWithdraw) GetInitRef() Link { return withdraw.InitRef }

// Countersigned - implemented by accept records, every one is also a
// Follower
type Countersigned interface {
	Transfer
	GetInitRef() Link
	Countersigner() *account.Account
	GetCountersignature() account.Signature
}

func (accept *AlphaSpenderAccept) GetCountersignature() account.Signature {
	return accept.Countersignature
}

func (accept *BetaRecipientAccept) GetCountersignature() account.Signature {
	return accept.Countersignature
}
