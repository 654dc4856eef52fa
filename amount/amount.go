// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amount

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mutualcredit/transactord/fault"
)

const (
	// largest magnitude that fits twelve hex digits
	MaxMagnitude = 0xffffffffffff

	// number of stored units in one display unit
	DisplayScale = 100000000

	displayDigits = 8
)

var hexPattern = regexp.MustCompile(`^-?[a-f0-9]{1,12}$`)

// Amount - signed fixed point value held in the smallest unit
//
// the zero value is a valid zero amount
type Amount struct {
	value int64
}

// Repr - both textual forms for external consumers
type Repr struct {
	System  string `json:"system"`
	Display string `json:"display"`
}

// Zero - the zero amount
var Zero = Amount{}

// Parse - convert canonical lowercase hex text to an Amount
func Parse(s string) (Amount, error) {
	if !hexPattern.MatchString(s) {
		return Amount{}, fault.InvalidAmount
	}
	negative := false
	if '-' == s[0] {
		negative = true
		s = s[1:]
	}

	v, err := strconv.ParseUint(s, 16, 64)
	if nil != err {
		return Amount{}, fault.InvalidAmount
	}
	n := int64(v)
	if negative {
		n = -n
	}
	return Amount{value: n}, nil
}

// FromInteger - range checked conversion from an integer
func FromInteger(n int64) (Amount, error) {
	if n > MaxMagnitude || n < -MaxMagnitude {
		return Amount{}, fault.InvalidAmountRange
	}
	return Amount{value: n}, nil
}

// FromNumber - conversion from a float that must hold an integral value
func FromNumber(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, fault.InvalidAmount
	}
	if f != math.Trunc(f) {
		return Amount{}, fault.NotAnAmount
	}
	if f > MaxMagnitude || f < -MaxMagnitude {
		return Amount{}, fault.InvalidAmountRange
	}
	return Amount{value: int64(f)}, nil
}

// Coerce - accept any of the operand types that arithmetic allows
func Coerce(v interface{}) (Amount, error) {
	switch n := v.(type) {
	case Amount:
		return n, nil
	case *Amount:
		if nil == n {
			return Amount{}, fault.BadArithmeticType
		}
		return *n, nil
	case string:
		return Parse(n)
	case int:
		return FromInteger(int64(n))
	case int32:
		return FromInteger(int64(n))
	case int64:
		return FromInteger(n)
	case uint32:
		return FromInteger(int64(n))
	case uint64:
		if n > MaxMagnitude {
			return Amount{}, fault.InvalidAmountRange
		}
		return FromInteger(int64(n))
	case float32:
		return FromNumber(float64(n))
	case float64:
		return FromNumber(n)
	case json.Number:
		if i, err := n.Int64(); nil == err {
			return FromInteger(i)
		}
		f, err := n.Float64()
		if nil != err {
			return Amount{}, fault.InvalidAmount
		}
		return FromNumber(f)
	default:
		return Amount{}, fault.BadArithmeticType
	}
}

// Int64 - the raw value in the smallest unit
func (a Amount) Int64() int64 {
	return a.value
}

// String - canonical hex form
func (a Amount) String() string {
	if a.value < 0 {
		return "-" + strconv.FormatUint(uint64(-a.value), 16)
	}
	return strconv.FormatUint(uint64(a.value), 16)
}

// GoString - for %#v
func (a Amount) GoString() string {
	return "<amount:" + a.String() + ">"
}

// Display - decimal form, the value divided by 10^8
func (a Amount) Display() string {
	v := a.value
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := v / DisplayScale
	fraction := v % DisplayScale
	if 0 == fraction {
		return sign + strconv.FormatInt(whole, 10)
	}
	digits := strings.TrimRight(fmt.Sprintf("%0*d", displayDigits, fraction), "0")
	return fmt.Sprintf("%s%d.%s", sign, whole, digits)
}

// Repr - system and display forms together
func (a Amount) Repr() Repr {
	return Repr{
		System:  a.String(),
		Display: a.Display(),
	}
}

// Add - range checked sum
func (a Amount) Add(b Amount) (Amount, error) {
	return FromInteger(a.value + b.value)
}

// Sub - range checked difference
func (a Amount) Sub(b Amount) (Amount, error) {
	return FromInteger(a.value - b.value)
}

// Mul - multiply by a raw factor, truncating toward zero
func (a Amount) Mul(factor float64) (Amount, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Amount{}, fault.FactorNotFinite
	}
	return fromTruncated(float64(a.value) * factor)
}

// Div - divide by a raw factor, truncating toward zero
func (a Amount) Div(factor float64) (Amount, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Amount{}, fault.FactorNotFinite
	}
	if 0 == factor {
		return Amount{}, fault.DivisionByZero
	}
	return fromTruncated(float64(a.value) / factor)
}

func fromTruncated(f float64) (Amount, error) {
	f = math.Trunc(f)
	if f > MaxMagnitude || f < -MaxMagnitude {
		return Amount{}, fault.InvalidAmountRange
	}
	return Amount{value: int64(f)}, nil
}

// Abs - magnitude, always in range
func (a Amount) Abs() Amount {
	if a.value < 0 {
		return Amount{value: -a.value}
	}
	return a
}

// Neg - the same magnitude with the opposite sign
func (a Amount) Neg() Amount {
	return Amount{value: -a.value}
}

// Gt - a > b
func (a Amount) Gt(b Amount) bool {
	return a.value > b.value
}

// Lt - a < b
func (a Amount) Lt(b Amount) bool {
	return a.value < b.value
}

// Cmp - -1, 0 or +1 as a is less than, equal to or greater than b
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.value < b.value:
		return -1
	case a.value > b.value:
		return 1
	default:
		return 0
	}
}

func (a Amount) IsNegative() bool {
	return a.value < 0
}

func (a Amount) IsZero() bool {
	return 0 == a.value
}

// MarshalText - convert to canonical hex for JSON
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from canonical hex
func (a *Amount) UnmarshalText(s []byte) error {
	v, err := Parse(string(s))
	if nil != err {
		return err
	}
	*a = v
	return nil
}
