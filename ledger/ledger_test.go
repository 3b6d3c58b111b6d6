// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/background"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/fixtures"
	"github.com/bitmark-inc/bankd/ledger"
)

// records every save and can be told to fail
type fakePersister struct {
	sync.Mutex
	fail  bool
	saves int
	last  map[account.Identifier]decimal.Decimal
}

func (p *fakePersister) Save(balances map[account.Identifier]decimal.Decimal) error {
	p.Lock()
	defer p.Unlock()
	if p.fail {
		return errors.New("disk full")
	}
	p.saves += 1
	p.last = balances
	return nil
}

func (p *fakePersister) setFail(fail bool) {
	p.Lock()
	p.fail = fail
	p.Unlock()
}

func (p *fakePersister) lastSaved() map[account.Identifier]decimal.Decimal {
	p.Lock()
	defer p.Unlock()
	return p.last
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func d(s string) decimal.Decimal {
	return fixtures.Decimal(s)
}

func assertBalance(t *testing.T, expected string, actual decimal.Decimal, message string) {
	assert.True(t, d(expected).Equal(actual), "%s: expected: %s  actual: %s", message, expected, actual)
}

func TestSetNormalisation(t *testing.T) {
	p := &fakePersister{}
	l := ledger.New(p, nil)
	a := fixtures.Account1

	for _, amount := range []string{"-10", "0", "0.01", "1000000"} {
		err := l.Set(a, d(amount))
		assert.Nil(t, err, "set: %s", amount)

		expected := d(amount)
		if !expected.IsPositive() {
			expected = decimal.Zero
		}
		assertBalance(t, expected.String(), l.Get(a), "get after set")

		_, stored := p.lastSaved()[a]
		assert.Equal(t, expected.IsPositive(), stored, "stored: %s", amount)
	}
}

func TestGetUnknown(t *testing.T) {
	l := ledger.New(&fakePersister{}, nil)
	assert.True(t, l.Get(fixtures.Account1).IsZero(), "unknown account not zero")
	assert.Equal(t, 0, l.Count(), "empty ledger has accounts")
}

func TestAddAddEqualsSet(t *testing.T) {
	l1 := ledger.New(&fakePersister{}, nil)
	l2 := ledger.New(&fakePersister{}, nil)
	a := fixtures.Account1

	assert.Nil(t, l1.Add(a, d("12.5")), "first add")
	assert.Nil(t, l1.Add(a, d("7.25")), "second add")
	assert.Nil(t, l2.Set(a, d("19.75")), "set")

	assert.True(t, l1.Get(a).Equal(l2.Get(a)), "add+add differs from set")
}

func TestAddRemoveInvalidAmount(t *testing.T) {
	p := &fakePersister{}
	l := ledger.New(p, nil)
	a := fixtures.Account1

	for _, amount := range []string{"0", "-1"} {
		assert.Equal(t, fault.ErrInvalidAmount, l.Add(a, d(amount)), "add: %s", amount)
		assert.Equal(t, fault.ErrInvalidAmount, l.Remove(a, d(amount)), "remove: %s", amount)
	}
	assert.Equal(t, 0, p.saves, "rejected operation was persisted")
}

func TestRemoveClampsAtZero(t *testing.T) {
	l := ledger.New(&fakePersister{}, nil)
	a := fixtures.Account1

	assert.Nil(t, l.Set(a, d("30")), "set")
	assert.Nil(t, l.Remove(a, d("10")), "remove")
	assertBalance(t, "20", l.Get(a), "partial remove")

	assert.Nil(t, l.Remove(a, d("50")), "over remove")
	assertBalance(t, "0", l.Get(a), "over remove")
	assert.Equal(t, 0, l.Count(), "zero balance account still exists")
}

func TestHas(t *testing.T) {
	l := ledger.New(&fakePersister{}, nil)
	a := fixtures.Account1

	assert.Nil(t, l.Set(a, d("100")), "set")
	assert.True(t, l.Has(a, d("100")), "exact amount")
	assert.True(t, l.Has(a, d("99.99")), "smaller amount")
	assert.False(t, l.Has(a, d("100.01")), "larger amount")
	assert.True(t, l.Has(fixtures.Account2, decimal.Zero), "zero amount for unknown account")
}

func TestTop(t *testing.T) {
	l := ledger.New(&fakePersister{}, map[account.Identifier]decimal.Decimal{
		fixtures.Account3: d("50"),
		fixtures.Account1: d("50"),
		fixtures.Account2: d("75"),
	})

	assert.Equal(t, 0, len(l.Top(0)), "zero entries")
	assert.Equal(t, 0, len(l.Top(-3)), "negative entries")

	top := l.Top(10)
	assert.Equal(t, 3, len(top), "wrong length")
	assert.Equal(t, fixtures.Account2, top[0].Account, "highest first")
	assert.Equal(t, fixtures.Account1, top[1].Account, "tie broken by identifier")
	assert.Equal(t, fixtures.Account3, top[2].Account, "tie broken by identifier")

	top = l.Top(2)
	assert.Equal(t, 2, len(top), "not truncated")
	for i := 1; i < len(top); i += 1 {
		assert.False(t, top[i].Balance.GreaterThan(top[i-1].Balance), "not descending")
	}
	for _, e := range top {
		assert.True(t, e.Balance.Equal(l.Get(e.Account)), "entry not in ledger")
	}
}

func TestTotalAndAccounts(t *testing.T) {
	l := ledger.New(&fakePersister{}, map[account.Identifier]decimal.Decimal{
		fixtures.Account3: d("0.5"),
		fixtures.Account1: d("10"),
		fixtures.Account2: d("-3"),
	})

	assertBalance(t, "10.5", l.Total(), "total")
	assert.Equal(t, []account.Identifier{fixtures.Account1, fixtures.Account3}, l.Accounts(), "accounts")

	snapshot := l.Snapshot()
	snapshot[fixtures.Account1] = d("999")
	assertBalance(t, "10", l.Get(fixtures.Account1), "snapshot aliased")
}

func TestPersistenceFailure(t *testing.T) {
	p := &fakePersister{}
	l := ledger.New(p, nil)
	a := fixtures.Account1

	assert.True(t, l.IsDurable(), "new ledger not durable")

	p.setFail(true)
	err := l.Add(a, d("5"))
	assert.Equal(t, fault.ErrPersistenceFailure, err, "wrong error")
	assertBalance(t, "5", l.Get(a), "memory not applied")
	assert.False(t, l.IsDurable(), "durable after failure")
	assert.Equal(t, uint64(1), l.Failures(), "failure not counted")

	p.setFail(false)
	assert.Nil(t, l.Flush(), "flush")
	assert.True(t, l.IsDurable(), "not durable after flush")
	assertBalance(t, "5", p.lastSaved()[a], "flush did not write")
}

func TestOnDurable(t *testing.T) {
	p := &fakePersister{}
	l := ledger.New(p, nil)

	var written []uint64
	l.OnDurable(func(version uint64) {
		written = append(written, version)
	})

	assert.Nil(t, l.Add(fixtures.Account1, d("1")), "add")
	assert.Equal(t, []uint64{1}, written, "first write")
	assert.Equal(t, uint64(1), l.Version(), "version")
	assert.Equal(t, uint64(1), l.Saved(), "saved")

	p.setFail(true)
	assert.Equal(t, fault.ErrPersistenceFailure, l.Add(fixtures.Account1, d("1")), "add while failing")
	assert.Equal(t, []uint64{1}, written, "called for a failed write")
	assert.Equal(t, uint64(2), l.Version(), "version after failure")
	assert.Equal(t, uint64(1), l.Saved(), "saved after failure")

	p.setFail(false)
	assert.Nil(t, l.Flush(), "flush")
	assert.Equal(t, []uint64{1, 2}, written, "flush not reported")
	assert.Equal(t, uint64(2), l.Saved(), "saved after flush")
}

func TestFlusherRecovers(t *testing.T) {
	p := &fakePersister{}
	l := ledger.New(p, nil)

	p.setFail(true)
	err := l.Set(fixtures.Account1, d("1"))
	assert.Equal(t, fault.ErrPersistenceFailure, err, "wrong error")

	processes := background.Start(background.Processes{
		ledger.NewFlusherWithDelay(l, time.Millisecond, 4*time.Millisecond),
	}, nil)
	defer processes.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.False(t, l.IsDurable(), "durable while disk still failing")

	p.setFail(false)

	deadline := time.Now().Add(2 * time.Second)
	for !l.IsDurable() && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	assert.True(t, l.IsDurable(), "flusher did not recover")
	assertBalance(t, "1", p.lastSaved()[fixtures.Account1], "flusher wrote wrong data")
}

func TestConcurrentAdds(t *testing.T) {
	p := &fakePersister{}
	l := ledger.New(p, nil)
	a := fixtures.Account1

	const workers = 8
	const loops = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < loops; i += 1 {
				_ = l.Add(a, d("0.01"))
			}
		}()
	}
	wg.Wait()

	assertBalance(t, "4", l.Get(a), "lost update")
	assertBalance(t, "4", p.lastSaved()[a], "last save missed a mutation")
	assert.True(t, l.IsDurable(), "not durable")
}
