// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package interest - periodic accrual of interest on bank balances
package interest

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/counter"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/presence"
)

// Accruer - the part of the bank the scheduler drives
type Accruer interface {
	Accounts() []account.Identifier
	Accrue(id account.Identifier, compute func(balance decimal.Decimal) (decimal.Decimal, bool)) (decimal.Decimal, decimal.Decimal, bool, error)
}

// Result - outcome of one accrual run
type Result struct {
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
	Accounts int             `json:"accounts"`
	Credited int             `json:"credited"`
	Exempt   int             `json:"exempt"`
	Total    decimal.Decimal `json:"total"`
	Error    string          `json:"error,omitempty"`
}

// Status - scheduler state for reporting
type Status struct {
	Enabled  bool    `json:"enabled"`
	Interval string  `json:"interval"`
	Rate     string  `json:"rate"`
	Minimum  string  `json:"minimumBalance"`
	Maximum  string  `json:"maximumInterest"`
	Runs     uint64  `json:"runs"`
	Last     *Result `json:"last,omitempty"`
}

// Scheduler - applies the interest policy to every account
type Scheduler struct {
	sync.RWMutex // protects policy and last
	log          *logger.L
	accruer      Accruer
	presence     presence.Presence
	notifier     presence.Notifier
	policy       Policy
	last         *Result

	running sync.Mutex     // one run at a time
	manual  sync.WaitGroup // runs started by RunNow
	runs    counter.Counter
}

// NewScheduler - create a scheduler
func NewScheduler(accruer Accruer, p presence.Presence, n presence.Notifier, policy Policy) *Scheduler {
	s := &Scheduler{
		log:      logger.New("interest"),
		accruer:  accruer,
		presence: p,
		notifier: n,
		policy:   policy,
	}
	s.log.Infof("enabled: %t  interval: %s  rate: %s  minimum: %s  maximum: %s",
		policy.Enabled, policy.Interval, policy.Rate, policy.Minimum, policy.Maximum)
	return s
}

// SetPolicy - replace the policy, takes effect from the next run
func (s *Scheduler) SetPolicy(policy Policy) {
	s.Lock()
	s.policy = policy
	s.Unlock()
	s.log.Infof("policy changed  enabled: %t  interval: %s  rate: %s  minimum: %s  maximum: %s",
		policy.Enabled, policy.Interval, policy.Rate, policy.Minimum, policy.Maximum)
}

// Policy - the current policy
func (s *Scheduler) Policy() Policy {
	s.RLock()
	defer s.RUnlock()
	return s.policy
}

// Run - background process: an accrual run every interval
//
// a run in progress is not cancelled by shutdown
func (s *Scheduler) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log
	log.Info("starting…")

loop:
	for {
		interval := s.Policy().Interval
		log.Debugf("next run in: %s", interval)

		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			if !s.Policy().Enabled {
				log.Debug("disabled, run skipped")
				continue loop
			}
			s.Apply()
		}
	}

	log.Info("shutting down…")
	log.Info("stopped")
}

// RunNow - start a run on a separate goroutine
func (s *Scheduler) RunNow() error {
	if !s.Policy().Enabled {
		return fault.ErrInterestDisabled
	}
	s.manual.Add(1)
	go func() {
		defer s.manual.Done()
		s.Apply()
	}()
	return nil
}

// Wait - block until every run started by RunNow has finished
func (s *Scheduler) Wait() {
	s.manual.Wait()
}

// Apply - one synchronous accrual run
//
// panics inside a run are logged and reported in the result
func (s *Scheduler) Apply() (result Result) {
	s.running.Lock()
	defer s.running.Unlock()

	policy := s.Policy()
	result.Started = time.Now()
	result.Total = decimal.Zero

	defer func() {
		if r := recover(); nil != r {
			s.log.Criticalf("run panic: %v", r)
			result.Error = fmt.Sprintf("panic: %v", r)
		}
		result.Finished = time.Now()

		s.Lock()
		last := result
		s.last = &last
		s.runs.Increment()
		s.Unlock()

		s.log.Infof("run: accounts: %d  credited: %d  exempt: %d  total: %s  error: %q",
			result.Accounts, result.Credited, result.Exempt, result.Total, result.Error)
	}()

	accounts := s.accruer.Accounts()
	result.Accounts = len(accounts)

	for _, id := range accounts {
		active := s.presence.IsActive(id)
		if s.exempt(policy, id, active) {
			result.Exempt += 1
			continue
		}

		interest, balance, applied, err := s.accruer.Accrue(id, policy.Interest)
		if !applied {
			continue
		}
		result.Credited += 1
		result.Total = result.Total.Add(interest)

		if nil != err {
			s.log.Errorf("account: %s  interest: %s  error: %s", id, interest, err)
			result.Error = err.Error()
		}

		if active {
			s.notifier.InterestEarned(id, interest, balance)
		}
	}
	return result
}

// offline owners are only checked when configured to
func (s *Scheduler) exempt(policy Policy, id account.Identifier, active bool) bool {
	if active {
		return s.presence.IsExempt(id)
	}
	if policy.ExemptOffline {
		return s.presence.KnownExempt(id)
	}
	return false
}

// Status - current policy and the outcome of the last run
func (s *Scheduler) Status() Status {
	s.RLock()
	defer s.RUnlock()

	status := Status{
		Enabled:  s.policy.Enabled,
		Interval: s.policy.Interval.String(),
		Rate:     s.policy.Rate.String(),
		Minimum:  s.policy.Minimum.String(),
		Maximum:  s.policy.Maximum.String(),
		Runs:     s.runs.Uint64(),
	}
	if nil != s.last {
		last := *s.last
		status.Last = &last
	}
	return status
}
