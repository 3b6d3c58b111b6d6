// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amount

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/bankd/fault"
)

// All - keyword for "the whole available balance"
const All = "all"

// IsAll - true if the argument is the "all" keyword
func IsAll(s string) bool {
	return All == strings.ToLower(strings.TrimSpace(s))
}

// Parse - convert a strictly positive decimal string
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if nil != err || !d.IsPositive() {
		return decimal.Zero, fault.ErrInvalidAmount
	}
	return d, nil
}

// ParseNonNegative - convert a decimal string that may be zero
func ParseNonNegative(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if nil != err || d.IsNegative() {
		return decimal.Zero, fault.ErrInvalidAmount
	}
	return d, nil
}
