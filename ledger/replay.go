// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/fault"
)

// State - result of a replay
type State struct {
	Balance amount.Amount `json:"balance"`
	FeeOwed amount.Amount `json:"feeOwed"`
}

// StateRepr - both text forms of a state
type StateRepr struct {
	Balance amount.Repr `json:"balance"`
	FeeOwed amount.Repr `json:"feeOwed"`
}

// Repr - canonical and display forms for external use
func (state State) Repr() StateRepr {
	return StateRepr{
		Balance: state.Balance.Repr(),
		FeeOwed: state.FeeOwed.Repr(),
	}
}

// Replay - fold the deltas in order into a balance and accrued fee
//
// fails at the first delta over the transaction maximum or the first
// point at which the balance is over the credit limit
func Replay(deltas []Delta, limits Limits) (State, error) {
	err := limits.Check()
	if nil != err {
		return State{}, err
	}

	balance := amount.Zero
	feeOwed := amount.Zero

	for _, delta := range deltas {
		magnitude := delta.Amount.Abs()
		if magnitude.Gt(limits.MaxTransactionAmount) {
			return State{}, fault.OverMaxTransactionAmount
		}

		if delta.Amount.IsNegative() {
			fee, err := magnitude.Mul(limits.FeeFactor)
			if nil != err {
				return State{}, err
			}
			feeOwed, err = feeOwed.Add(fee)
			if nil != err {
				return State{}, err
			}
		}

		balance, err = balance.Add(delta.Amount)
		if nil != err {
			return State{}, err
		}

		if balance.Gt(limits.CreditLimit) {
			return State{}, fault.OverCreditLimit
		}
	}

	return State{Balance: balance, FeeOwed: feeOwed}, nil
}
