// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/bankd/fault"
)

// default values
const (
	DefaultInterval        = "24h"
	DefaultRate            = 0.01
	DefaultMinimumBalance  = 1000
	DefaultMaximumInterest = 10000
)

// Configuration - the interest section of the configuration file
type Configuration struct {
	Enabled         bool    `gluamapper:"enabled" json:"enabled"`
	Interval        string  `gluamapper:"interval" json:"interval"`
	Rate            float64 `gluamapper:"rate" json:"rate"`
	MinimumBalance  float64 `gluamapper:"minimum_balance" json:"minimum_balance"`
	MaximumInterest float64 `gluamapper:"maximum_interest" json:"maximum_interest"`
	ExemptOffline   bool    `gluamapper:"exempt_offline" json:"exempt_offline"`
}

// DefaultConfiguration - interest disabled, other fields at defaults
func DefaultConfiguration() Configuration {
	return Configuration{
		Enabled:         false,
		Interval:        DefaultInterval,
		Rate:            DefaultRate,
		MinimumBalance:  DefaultMinimumBalance,
		MaximumInterest: DefaultMaximumInterest,
		ExemptOffline:   false,
	}
}

// Policy - validated form of the configuration
type Policy struct {
	Enabled       bool
	Interval      time.Duration
	Rate          decimal.Decimal
	Minimum       decimal.Decimal
	Maximum       decimal.Decimal // zero: nothing is credited
	ExemptOffline bool
}

// NewPolicy - validate a configuration
func NewPolicy(conf Configuration) (Policy, error) {
	interval, err := time.ParseDuration(conf.Interval)
	if nil != err || interval <= 0 {
		return Policy{}, fault.ErrInvalidInterval
	}
	if conf.Rate < 0 {
		return Policy{}, fault.ErrInvalidRate
	}
	if conf.MinimumBalance < 0 || conf.MaximumInterest < 0 {
		return Policy{}, fault.ErrInvalidAmount
	}

	return Policy{
		Enabled:       conf.Enabled,
		Interval:      interval,
		Rate:          decimal.NewFromFloat(conf.Rate),
		Minimum:       decimal.NewFromFloat(conf.MinimumBalance),
		Maximum:       decimal.NewFromFloat(conf.MaximumInterest),
		ExemptOffline: conf.ExemptOffline,
	}, nil
}

// Interest - amount to credit on a balance
//
// false if the balance is below the minimum or nothing would be credited
func (p Policy) Interest(balance decimal.Decimal) (decimal.Decimal, bool) {
	if balance.LessThan(p.Minimum) {
		return decimal.Zero, false
	}

	interest := decimal.Min(balance.Mul(p.Rate), p.Maximum)
	if !interest.IsPositive() {
		return decimal.Zero, false
	}
	return interest, true
}
