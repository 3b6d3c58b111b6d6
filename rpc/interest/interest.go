// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interest

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/fault"
	accrual "github.com/bitmark-inc/bankd/interest"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/rpc/ratelimit"
)

const (
	rateLimitInterest = 10
	rateBurstInterest = 5
)

// Runner - the interest scheduler
type Runner interface {
	RunNow() error
	Status() accrual.Status
}

// Interest - type for RPC calls
type Interest struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Runner       Runner
}

// New - create the RPC handler
func New(log *logger.L, isNormalMode func(mode.Mode) bool, runner Runner) *Interest {
	return &Interest{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitInterest, rateBurstInterest),
		IsNormalMode: isNormalMode,
		Runner:       runner,
	}
}

// RunNowArguments - empty arguments for RPC
type RunNowArguments struct{}

// RunNowReply - result from RPC
type RunNowReply struct {
	Started bool `json:"started"`
}

// RunNow - start an accrual run in the background
func (i *Interest) RunNow(_ *RunNowArguments, reply *RunNowReply) error {
	if err := ratelimit.Limit(i.Limiter); nil != err {
		return err
	}
	if !i.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringRecovery
	}

	if err := i.Runner.RunNow(); nil != err {
		return err
	}

	i.Log.Info("Interest.RunNow: started")
	reply.Started = true
	return nil
}

// StatusArguments - empty arguments for RPC
type StatusArguments struct{}

// StatusReply - result from RPC
type StatusReply struct {
	accrual.Status
}

// Status - policy and last run
func (i *Interest) Status(_ *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(i.Limiter); nil != err {
		return err
	}

	reply.Status = i.Runner.Status()
	return nil
}
