// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/background"
	"github.com/bitmark-inc/bankd/bank"
	"github.com/bitmark-inc/bankd/datafile"
	"github.com/bitmark-inc/bankd/intent"
	"github.com/bitmark-inc/bankd/interest"
	"github.com/bitmark-inc/bankd/ledger"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/presence"
	"github.com/bitmark-inc/bankd/rpc"
	"github.com/bitmark-inc/bankd/rpc/server"
	"github.com/bitmark-inc/bankd/rpc/session"
	"github.com/bitmark-inc/bankd/storage"
	"github.com/bitmark-inc/bankd/wallet"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise()
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	log.Infof("database: %q", theConfiguration.Database)
	log.Infof("ledger file: %q", theConfiguration.LedgerFile)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Interest", theConfiguration.Interest)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// load the bank balances
	log.Info("initialise ledger")
	document := datafile.New(theConfiguration.LedgerFile)
	balances, err := document.Load()
	if nil != err {
		log.Criticalf("ledger load error: %s", err)
		exitwithstatus.Message("ledger load error: %s", err)
	}
	theLedger := ledger.New(document, balances)

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, document, theLedger) {
		return
	}

	// the final write happens after every background process has
	// stopped, so it holds the last mutation
	defer func() {
		if err := theLedger.Flush(); nil != err {
			log.Criticalf("final ledger flush error: %s", err)
		} else {
			log.Info("ledger flushed")
		}
	}()

	theWallet := wallet.NewLocal(storage.Pool.Wallet)
	theBank := bank.New(theLedger, theWallet, intent.New(storage.Pool.Intents), theConfiguration.maximumBalance())

	// finish transfers interrupted by a previous crash
	resolved, err := theBank.Recover(context.Background())
	if nil != err {
		log.Criticalf("recover error: %s", err)
		exitwithstatus.Message("recover error: %s", err)
	}
	log.Infof("recovered transfers: %d", resolved)

	registry := presence.NewRegistry(theConfiguration.sessionTTL())

	policy, err := interest.NewPolicy(theConfiguration.Interest)
	if nil != err {
		log.Criticalf("interest policy error: %s", err)
		exitwithstatus.Message("interest policy error: %s", err)
	}
	scheduler := interest.NewScheduler(theBank, registry, registry, policy)

	processes := background.Processes{
		ledger.NewFlusher(theLedger),
		scheduler,
	}

	watcher, err := newConfigWatcher(configurationFile, scheduler)
	if nil != err {
		log.Errorf("configuration watcher error: %s  changes need a restart", err)
	} else {
		processes = append(processes, watcher)
	}

	// a manual run must finish before the final flush
	defer scheduler.Wait()

	processing := background.Start(processes, nil)
	defer processing.Stop()

	mode.Set(mode.Normal)

	// start up the rpc background processes
	deps := server.Dependencies{
		Bank:     theBank,
		Store:    theBank,
		Wallet:   theWallet,
		Registry: registry,
		Ledger:   theLedger,
		Backuper: document,
		Interest: scheduler,
		Options: session.Options{
			OpeningBalance: theConfiguration.openingBalance(),
			NotifyOnJoin:   theConfiguration.Session.NotifyOnJoin,
		},
	}
	err = rpc.Initialise(&theConfiguration.ClientRPC, deps, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
