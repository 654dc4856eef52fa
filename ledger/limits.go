// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"

	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/fault"
)

// DefaultCreditLimit - hex form of the fixed credit limit
const DefaultCreditLimit = "ba43b7400"

// Limits - the ledger properties in force for one computation
type Limits struct {
	MaxTransactionAmount amount.Amount `json:"maxTransactionAmount"`
	MaxTransactionFee    amount.Amount `json:"maxTransactionFee"` // not enforced yet
	FeeFactor            float64       `json:"transactionFeeFactor"`
	CreditLimit          amount.Amount `json:"creditLimit"`
}

// Properties - source of the current limits
//
// callers take one snapshot per operation
type Properties interface {
	Limits() (Limits, error)
}

// Fixed - properties that never change
type Fixed Limits

// Limits - the fixed values
func (f Fixed) Limits() (Limits, error) {
	return Limits(f), nil
}

// NewLimits - limits from raw property values
//
// amounts may be hex text or integers, an empty credit limit selects
// the default
func NewLimits(maxTransactionAmount interface{}, maxTransactionFee interface{}, feeFactor float64, creditLimit interface{}) (Limits, error) {
	maxAmount, err := amount.Coerce(maxTransactionAmount)
	if nil != err {
		return Limits{}, err
	}
	maxFee, err := amount.Coerce(maxTransactionFee)
	if nil != err {
		return Limits{}, err
	}

	if nil == creditLimit || "" == creditLimit {
		creditLimit = DefaultCreditLimit
	}
	limit, err := amount.Coerce(creditLimit)
	if nil != err {
		return Limits{}, err
	}

	limits := Limits{
		MaxTransactionAmount: maxAmount,
		MaxTransactionFee:    maxFee,
		FeeFactor:            feeFactor,
		CreditLimit:          limit,
	}
	return limits, limits.Check()
}

// Check - reject limits that cannot be used for replay
func (limits Limits) Check() error {
	if math.IsNaN(limits.FeeFactor) || math.IsInf(limits.FeeFactor, 0) {
		return fault.FactorNotFinite
	}
	if limits.FeeFactor < 0 || limits.MaxTransactionAmount.IsNegative() || limits.MaxTransactionFee.IsNegative() {
		return fault.InvalidProperty
	}
	return nil
}
