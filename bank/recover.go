// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bank

import (
	"context"

	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/intent"
)

// Recover - resolve transfers interrupted by a crash
//
// must run before any other operation; the recorded balance from
// before the transfer tells which steps reached the ledger.  Returns
// the number of intents resolved.  Intents that cannot be decided are
// kept for manual reconciliation.
func (b *Bank) Recover(ctx context.Context) (int, error) {
	pending, err := b.journal.Pending()
	if nil != err {
		return 0, err
	}

	if 0 == len(pending) {
		b.log.Info("recover: nothing pending")
		return 0, nil
	}
	b.log.Warnf("recover: %d pending intents", len(pending))

	resolved := 0
	for _, in := range pending {
		if err := ctx.Err(); nil != err {
			return resolved, err
		}

		mu := b.accountLock(in.Account)
		mu.Lock()
		err := b.resolve(ctx, in)
		mu.Unlock()

		if fault.ErrPersistenceFailure == err {
			b.log.Errorf("recover: intent: %s  account: %s  applied, waiting for the ledger write", in.ID, in.Account)
			b.completeWhenDurable(in)
			continue
		}
		if nil != err {
			b.log.Criticalf("recover: intent: %s  account: %s  kept  error: %s", in.ID, in.Account, err)
			continue
		}
		b.complete(in)
		resolved += 1
	}

	return resolved, nil
}

// must hold the account lock
func (b *Bank) resolve(ctx context.Context, in *intent.Intent) error {
	current := b.ledger.Get(in.Account)
	untouched := current.Equal(in.Before)

	b.log.Infof("recover: intent: %s  kind: %s  stage: %s  account: %s  amount: %s  before: %s  current: %s",
		in.ID, in.Kind, in.Stage, in.Account, in.Amount, in.Before, current)

	switch in.Kind {
	case intent.Deposit:
		switch in.Stage {
		case intent.Reserved:
			// wallet debit may or may not have happened
			b.log.Criticalf("recover: deposit: %s  amount: %s  wallet state unknown, reconcile manually", in.Account, in.Amount)
			return fault.ErrUnresolvedIntent

		case intent.Transferred, intent.Settled:
			if untouched {
				return b.ledger.Add(in.Account, in.Amount)
			}
			if !current.Equal(in.Before.Add(in.Amount)) {
				b.log.Warnf("recover: deposit: %s  balance: %s  expected: %s  assuming applied", in.Account, current, in.Before.Add(in.Amount))
			}
			return nil
		}

	case intent.Withdraw:
		switch in.Stage {
		case intent.Reserved:
			if untouched {
				return nil
			}
			if !current.Equal(in.Before.Sub(in.Amount)) {
				b.log.Warnf("recover: withdraw: %s  balance: %s  expected: %s", in.Account, current, in.Before.Sub(in.Amount))
			}
			return b.wallet.Deposit(ctx, in.Account, in.Amount)

		case intent.Transferred:
			b.log.Warnf("recover: withdraw: %s  amount: %s  crediting wallet again", in.Account, in.Amount)
			return b.wallet.Deposit(ctx, in.Account, in.Amount)

		case intent.Settled:
			if untouched {
				return b.ledger.Remove(in.Account, in.Amount)
			}
			return nil
		}
	}

	b.log.Criticalf("recover: intent: %s  unknown kind: %q  stage: %q", in.ID, in.Kind, in.Stage)
	return fault.ErrUnresolvedIntent
}
