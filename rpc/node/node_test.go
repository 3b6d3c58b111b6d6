// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/counter"
	"github.com/bitmark-inc/bankd/datafile"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/fixtures"
	"github.com/bitmark-inc/bankd/ledger"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/presence"
	"github.com/bitmark-inc/bankd/rpc/node"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newNode(t *testing.T, isNormal func(mode.Mode) bool) (*node.Node, *datafile.File, *presence.Registry) {
	file := datafile.New(filepath.Join(fixtures.Directory(), "node-test.json"))
	l := ledger.New(file, map[account.Identifier]decimal.Decimal{
		fixtures.Account1: fixtures.Decimal("100.5"),
		fixtures.Account2: fixtures.Decimal("20"),
	})
	registry := presence.NewRegistry(time.Minute)
	ctr := counter.Counter(3)

	n := node.New(logger.New(fixtures.LogCategory), isNormal, time.Now(), "1.2.3", &ctr, l, file, registry)
	return n, file, registry
}

func TestNodeInfo(t *testing.T) {
	n, _, registry := newNode(t, func(mode.Mode) bool { return true })
	registry.Join(fixtures.Account1, false)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "1.2.3", reply.Version, "wrong version")
	assert.Equal(t, uint64(3), reply.RPCs, "wrong rpc count")
	assert.Equal(t, 1, reply.Sessions, "wrong session count")
	assert.Equal(t, 2, reply.Ledger.Accounts, "wrong account count")
	assert.Equal(t, "120.5", reply.Ledger.Total, "wrong total")
	assert.True(t, reply.Ledger.Durable, "loaded ledger not durable")
	assert.Equal(t, uint64(0), reply.Ledger.Failures, "wrong failure count")
}

func TestNodeBackup(t *testing.T) {
	n, file, _ := newNode(t, func(mode.Mode) bool { return true })

	var reply node.BackupReply
	err := n.Backup(&node.BackupArguments{}, &reply)
	assert.Nil(t, err, "wrong Backup")
	assert.NotEqual(t, file.FileName(), reply.FileName, "backup overwrote the document")

	backup := datafile.New(reply.FileName)
	balances, err := backup.Load()
	assert.Nil(t, err, "backup load error")
	assert.Equal(t, 2, len(balances), "wrong backup account count")
	assert.Equal(t, "100.5", balances[fixtures.Account1].String(), "wrong backup balance")

	var info node.InfoReply
	assert.Nil(t, n.Info(&node.InfoArguments{}, &info), "wrong Info")
	assert.True(t, info.Ledger.Durable, "flushed ledger not durable")
}

func TestNodeBackupRecovering(t *testing.T) {
	n, _, _ := newNode(t, func(mode.Mode) bool { return false })

	var reply node.BackupReply
	err := n.Backup(&node.BackupArguments{}, &reply)
	assert.Equal(t, fault.ErrNotAvailableDuringRecovery, err, "backup during recovery")
}
