// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amount_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/fault"
)

func TestParseRoundTrip(t *testing.T) {
	items := []struct {
		in        string
		canonical string
		value     int64
	}{
		{"0", "0", 0},
		{"-0", "0", 0},
		{"1", "1", 1},
		{"-1", "-1", -1},
		{"64", "64", 100},
		{"000064", "64", 100},
		{"ba43b7400", "ba43b7400", 50000000000},
		{"ffffffffffff", "ffffffffffff", amount.MaxMagnitude},
		{"-ffffffffffff", "-ffffffffffff", -amount.MaxMagnitude},
		{"abcdef", "abcdef", 0xabcdef},
	}

	for i, item := range items {
		a, err := amount.Parse(item.in)
		if nil != err {
			t.Fatalf("%d: parse %q error: %s", i, item.in, err)
		}
		assert.Equal(t, item.value, a.Int64(), "%d: value", i)
		assert.Equal(t, item.canonical, a.String(), "%d: canonical", i)

		b, err := amount.Parse(a.String())
		if nil != err {
			t.Fatalf("%d: reparse %q error: %s", i, a.String(), err)
		}
		assert.Equal(t, a, b, "%d: round trip", i)
	}
}

func TestParseInvalid(t *testing.T) {
	items := []string{
		"",
		"-",
		"--1",
		"+1",
		"ABC",
		"0x64",
		" 64",
		"64 ",
		"g",
		"1000000000000",
		"1.5",
	}
	for i, s := range items {
		_, err := amount.Parse(s)
		assert.True(t, fault.IsErrFormat(err), "%d: %q expected format error, got: %v", i, s, err)
	}
}

func TestDisplay(t *testing.T) {
	items := []struct {
		in      string
		display string
	}{
		{"0", "0"},
		{"1", "0.00000001"},
		{"-1", "-0.00000001"},
		{"64", "0.000001"},
		{"5f5e100", "1"},
		{"-5f5e100", "-1"},
		{"8f0d180", "1.5"},
		{"ba43b7400", "500"},
	}
	for i, item := range items {
		a, err := amount.Parse(item.in)
		if nil != err {
			t.Fatalf("%d: parse %q error: %s", i, item.in, err)
		}
		assert.Equal(t, item.display, a.Display(), "%d: display", i)
		assert.Equal(t, amount.Repr{System: a.String(), Display: item.display}, a.Repr(), "%d: repr", i)
	}
}

func TestFromNumber(t *testing.T) {
	a, err := amount.FromNumber(100)
	assert.Nil(t, err, "integral value")
	assert.Equal(t, "64", a.String(), "hex")

	_, err = amount.FromNumber(1.5)
	assert.Equal(t, fault.NotAnAmount, err, "fractional value")

	_, err = amount.FromNumber(math.NaN())
	assert.True(t, fault.IsErrFormat(err), "NaN")

	_, err = amount.FromNumber(float64(amount.MaxMagnitude) + 1)
	assert.Equal(t, fault.InvalidAmountRange, err, "out of range")

	_, err = amount.FromInteger(-amount.MaxMagnitude - 1)
	assert.Equal(t, fault.InvalidAmountRange, err, "out of range")
}

func TestCoerce(t *testing.T) {
	items := []interface{}{
		"64",
		100,
		int64(100),
		uint64(100),
		float64(100),
		json.Number("100"),
		amount.Amount{},
	}
	for i, v := range items {
		a, err := amount.Coerce(v)
		if nil != err {
			t.Fatalf("%d: coerce %v error: %s", i, v, err)
		}
		if i < len(items)-1 {
			assert.Equal(t, int64(100), a.Int64(), "%d: value", i)
		}
	}

	_, err := amount.Coerce(true)
	assert.Equal(t, fault.BadArithmeticType, err, "bool")
	assert.True(t, fault.IsErrArithmetic(err), "class")

	_, err = amount.Coerce([]byte("64"))
	assert.True(t, fault.IsErrArithmetic(err), "byte slice")

	_, err = amount.Coerce(2.25)
	assert.True(t, fault.IsErrFormat(err), "fraction")
}

func TestArithmetic(t *testing.T) {
	a, _ := amount.FromInteger(7)
	b, _ := amount.FromInteger(-3)

	sum, err := a.Add(b)
	assert.Nil(t, err, "add")
	assert.Equal(t, int64(4), sum.Int64(), "add")

	diff, err := b.Sub(a)
	assert.Nil(t, err, "sub")
	assert.Equal(t, int64(-10), diff.Int64(), "sub")

	half, err := a.Mul(0.5)
	assert.Nil(t, err, "mul")
	assert.Equal(t, int64(3), half.Int64(), "mul truncates")

	negHalf, err := a.Neg().Mul(0.5)
	assert.Nil(t, err, "mul")
	assert.Equal(t, int64(-3), negHalf.Int64(), "mul truncates toward zero")

	third, err := a.Div(2)
	assert.Nil(t, err, "div")
	assert.Equal(t, int64(3), third.Int64(), "div truncates")

	_, err = a.Div(0)
	assert.Equal(t, fault.DivisionByZero, err, "div by zero")

	_, err = a.Mul(math.Inf(1))
	assert.True(t, fault.IsErrArithmetic(err), "infinite factor")

	assert.Equal(t, int64(3), b.Abs().Int64(), "abs")
	assert.True(t, a.Gt(b), "gt")
	assert.True(t, b.Lt(a), "lt")
	assert.Equal(t, 0, a.Cmp(a), "cmp")
	assert.True(t, b.IsNegative(), "negative")
	assert.True(t, amount.Zero.IsZero(), "zero")
}

func TestOverflow(t *testing.T) {
	max, _ := amount.FromInteger(amount.MaxMagnitude)
	one, _ := amount.FromInteger(1)

	_, err := max.Add(one)
	assert.Equal(t, fault.InvalidAmountRange, err, "add overflow")

	_, err = max.Neg().Sub(one)
	assert.Equal(t, fault.InvalidAmountRange, err, "sub overflow")

	_, err = max.Mul(2)
	assert.Equal(t, fault.InvalidAmountRange, err, "mul overflow")
}

func TestJSON(t *testing.T) {
	type holder struct {
		Amount amount.Amount `json:"amount"`
	}

	a, _ := amount.FromInteger(-100)
	buffer, err := json.Marshal(holder{Amount: a})
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `{"amount":"-64"}`, string(buffer), "json")

	var h holder
	err = json.Unmarshal(buffer, &h)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, a, h.Amount, "round trip")

	err = json.Unmarshal([]byte(`{"amount":"XYZ"}`), &h)
	assert.NotNil(t, err, "bad hex")
}
