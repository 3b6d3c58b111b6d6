// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the authoritative in-memory account balances
//
// an account exists only while its balance is strictly positive, so
// absence and a zero balance are the same thing.  Every mutation is
// written through to a Persister before returning; if that write
// fails the mutation stays applied in memory, the ledger is marked as
// not durable and a Flusher keeps retrying.
package ledger

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/counter"
	"github.com/bitmark-inc/bankd/fault"
)

// Persister - durable mirror of the ledger
type Persister interface {
	Save(balances map[account.Identifier]decimal.Decimal) error
}

// Entry - one ranked account
type Entry struct {
	Account account.Identifier `json:"account"`
	Balance decimal.Decimal    `json:"balance"`
}

// Ledger - the set of account balances
type Ledger struct {
	sync.RWMutex
	log       *logger.L
	balances  map[account.Identifier]decimal.Decimal
	persister Persister
	version   uint64 // incremented by every mutation, protected by RWMutex

	// serialises snapshot+write so the newest write holds every earlier mutation
	saving   sync.Mutex
	saved    uint64 // last version known to be on disk, atomic
	failures counter.Counter

	// called after every successful write with the version written
	durable []func(version uint64)
}

// New - create a ledger seeded from previously loaded balances
func New(persister Persister, initial map[account.Identifier]decimal.Decimal) *Ledger {
	balances := make(map[account.Identifier]decimal.Decimal, len(initial))
	for id, amount := range initial {
		if amount.IsPositive() {
			balances[id] = amount
		}
	}

	log := logger.New("ledger")
	log.Infof("accounts: %d", len(balances))

	return &Ledger{
		log:       log,
		balances:  balances,
		persister: persister,
	}
}

// Get - current balance, zero for an unknown account
func (l *Ledger) Get(id account.Identifier) decimal.Decimal {
	l.RLock()
	defer l.RUnlock()
	return l.balances[id]
}

// Has - true if the balance covers the amount
func (l *Ledger) Has(id account.Identifier, amount decimal.Decimal) bool {
	return l.Get(id).GreaterThanOrEqual(amount)
}

// Set - replace a balance; zero or negative removes the account
func (l *Ledger) Set(id account.Identifier, amount decimal.Decimal) error {
	l.Lock()
	l.store(id, amount)
	l.Unlock()

	return l.persist(false)
}

// Add - credit a positive amount
func (l *Ledger) Add(id account.Identifier, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fault.ErrInvalidAmount
	}

	l.Lock()
	l.store(id, l.balances[id].Add(amount))
	l.Unlock()

	return l.persist(false)
}

// Remove - debit a positive amount, the balance never goes below zero
func (l *Ledger) Remove(id account.Identifier, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fault.ErrInvalidAmount
	}

	l.Lock()
	l.store(id, l.balances[id].Sub(amount))
	l.Unlock()

	return l.persist(false)
}

// must hold the write lock
func (l *Ledger) store(id account.Identifier, amount decimal.Decimal) {
	if amount.IsPositive() {
		l.balances[id] = amount
	} else {
		delete(l.balances, id)
	}
	l.version += 1
}

// Top - at most n accounts by descending balance
//
// equal balances are ordered by ascending identifier
func (l *Ledger) Top(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	l.RLock()
	entries := make([]Entry, 0, len(l.balances))
	for id, balance := range l.balances {
		entries = append(entries, Entry{Account: id, Balance: balance})
	}
	l.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		switch entries[i].Balance.Cmp(entries[j].Balance) {
		case 1:
			return true
		case -1:
			return false
		default:
			return entries[i].Account.Less(entries[j].Account)
		}
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Total - sum of all balances
func (l *Ledger) Total() decimal.Decimal {
	l.RLock()
	defer l.RUnlock()

	total := decimal.Zero
	for _, balance := range l.balances {
		total = total.Add(balance)
	}
	return total
}

// Count - number of accounts
func (l *Ledger) Count() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.balances)
}

// Accounts - identifiers of all accounts in ascending order
func (l *Ledger) Accounts() []account.Identifier {
	l.RLock()
	ids := make([]account.Identifier, 0, len(l.balances))
	for id := range l.balances {
		ids = append(ids, id)
	}
	l.RUnlock()

	account.Sort(ids)
	return ids
}

// Snapshot - copy of all balances
func (l *Ledger) Snapshot() map[account.Identifier]decimal.Decimal {
	l.RLock()
	defer l.RUnlock()
	return l.snapshot()
}

// must hold a read lock
func (l *Ledger) snapshot() map[account.Identifier]decimal.Decimal {
	s := make(map[account.Identifier]decimal.Decimal, len(l.balances))
	for id, balance := range l.balances {
		s[id] = balance
	}
	return s
}

// Flush - write the current balances even if already durable
func (l *Ledger) Flush() error {
	return l.persist(true)
}

// IsDurable - true if every applied mutation has been written
func (l *Ledger) IsDurable() bool {
	l.RLock()
	version := l.version
	l.RUnlock()
	return atomic.LoadUint64(&l.saved) >= version
}

// Version - number of mutations applied since start
func (l *Ledger) Version() uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.version
}

// Saved - the newest version known to be on disk
func (l *Ledger) Saved() uint64 {
	return atomic.LoadUint64(&l.saved)
}

// OnDurable - register a function to run after each successful write
//
// it runs while writes are serialised, so it must not mutate the ledger
func (l *Ledger) OnDurable(fn func(version uint64)) {
	l.saving.Lock()
	l.durable = append(l.durable, fn)
	l.saving.Unlock()
}

// Failures - number of failed writes since start
func (l *Ledger) Failures() uint64 {
	return l.failures.Uint64()
}

func (l *Ledger) persist(force bool) error {
	l.saving.Lock()
	defer l.saving.Unlock()

	l.RLock()
	version := l.version
	balances := l.snapshot()
	l.RUnlock()

	// a concurrent writer already saved a snapshot at least this new
	if !force && atomic.LoadUint64(&l.saved) >= version {
		return nil
	}

	if err := l.persister.Save(balances); nil != err {
		n := l.failures.Increment()
		l.log.Errorf("save version: %d  failures: %d  error: %s", version, n, err)
		return fault.ErrPersistenceFailure
	}

	atomic.StoreUint64(&l.saved, version)
	for _, fn := range l.durable {
		fn(version)
	}
	return nil
}
