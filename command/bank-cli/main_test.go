// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/fixtures"
	"github.com/bitmark-inc/bankd/ledger"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/rpc/bank"
	"github.com/bitmark-inc/bankd/rpc/mocks"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// a JSON RPC server holding only the Bank service
func startServer(t *testing.T, tr bank.Transactor) (string, func()) {
	cert, key, err := certgen.NewTLSCertPair("bank-cli test", time.Now().Add(time.Hour), false, nil)
	if nil != err {
		t.Fatalf("certgen error: %s", err)
	}
	keyPair, err := tls.X509KeyPair(cert, key)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}

	server := rpc.NewServer()
	normal := func(mode.Mode) bool { return true }
	_ = server.Register(bank.New(logger.New(fixtures.LogCategory), normal, tr))

	listener, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{keyPair}})
	if nil != err {
		t.Fatalf("listen error: %s", err)
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if nil != err {
				return
			}
			go server.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	return listener.Addr().String(), func() { listener.Close() }
}

func run(t *testing.T, arguments ...string) (string, error) {
	var w, e bytes.Buffer
	app := newApp(&w, &e)
	err := app.Run(append([]string{"bank-cli"}, arguments...))
	return w.String(), err
}

func TestBalance(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	tr.EXPECT().Balance(fixtures.Account2).Return(fixtures.Decimal("12.5")).Times(1)

	address, stop := startServer(t, tr)
	defer stop()

	out, err := run(t, "-c", address, "-a", fixtures.Account1.String(), "balance", fixtures.Account2.String())
	assert.Nil(t, err, "wrong run")

	var reply bank.BalanceReply
	assert.Nil(t, json.Unmarshal([]byte(out), &reply), "wrong output: %s", out)
	assert.Equal(t, fixtures.Account2, reply.Account, "wrong account")
	assert.Equal(t, "12.5", reply.Balance, "wrong balance")
}

func TestDepositAll(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	tr.EXPECT().DepositAll(gomock.Any(), fixtures.Account1).Return(fixtures.Decimal("250.75"), fixtures.Decimal("250.75"), nil).Times(1)

	address, stop := startServer(t, tr)
	defer stop()

	out, err := run(t, "-c", address, "-a", fixtures.Account1.String(), "deposit", "ALL")
	assert.Nil(t, err, "wrong run")

	var reply bank.TransferReply
	assert.Nil(t, json.Unmarshal([]byte(out), &reply), "wrong output: %s", out)
	assert.Equal(t, "250.75", reply.Amount, "wrong amount")
	assert.Equal(t, "250.75", reply.Balance, "wrong balance")
}

func TestTop(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	tr.EXPECT().Top(2).Return([]ledger.Entry{
		{Account: fixtures.Account3, Balance: fixtures.Decimal("30")},
		{Account: fixtures.Account1, Balance: fixtures.Decimal("10")},
	}).Times(1)

	address, stop := startServer(t, tr)
	defer stop()

	out, err := run(t, "-c", address, "top", "--count", "2")
	assert.Nil(t, err, "wrong run")

	var reply bank.TopReply
	assert.Nil(t, json.Unmarshal([]byte(out), &reply), "wrong output: %s", out)
	if assert.Equal(t, 2, len(reply.Entries), "wrong entry count") {
		assert.Equal(t, 1, reply.Entries[0].Rank, "wrong rank")
		assert.Equal(t, fixtures.Account3, reply.Entries[0].Account, "wrong first account")
	}
}

func TestArgumentErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// nothing reaches the server
	tr := mocks.NewMockTransactor(ctl)
	address, stop := startServer(t, tr)
	defer stop()

	items := [][]string{
		{"-c", address, "balance"},
		{"-c", address, "balance", "not-a-uuid"},
		{"-c", address, "-a", fixtures.Account1.String(), "deposit", "-5"},
		{"-c", address, "-a", fixtures.Account1.String(), "withdraw", "lots"},
		{"-c", address, "set", fixtures.Account1.String(), "-1"},
		{"-c", address, "reset"},
		{"-c", address, "top", "--count", "0"},
	}
	for i, arguments := range items {
		_, err := run(t, arguments...)
		assert.NotNil(t, err, "%d: expected error for: %v", i, arguments)
	}
}

func TestConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err, "listen error")
	address := listener.Addr().String()
	listener.Close()

	_, err = run(t, "-c", address, "total")
	assert.NotNil(t, err, "expected dial error")
}
