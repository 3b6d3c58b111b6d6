// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/bank"
	"github.com/bitmark-inc/bankd/configuration"
	"github.com/bitmark-inc/bankd/interest"
	"github.com/bitmark-inc/bankd/rpc/listeners"
	"github.com/bitmark-inc/bankd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLedgerFile = "ledger.json"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "bank.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "bankd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10

	defaultSessionTTL     = "15m"
	defaultOpeningBalance = 0
	defaultMaximumBalance = 0 // no limit
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - leveldb location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// WalletType - the local wallet
type WalletType struct {
	OpeningBalance float64 `gluamapper:"opening_balance" json:"opening_balance"`
}

// SessionType - presence registry
type SessionType struct {
	TTL          string `gluamapper:"ttl" json:"ttl"`
	NotifyOnJoin bool   `gluamapper:"notify_on_join" json:"notify_on_join"`
}

// Configuration - the decoded configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`
	LedgerFile    string       `gluamapper:"ledger_file" json:"ledger_file"`

	Bank      bank.Configuration         `gluamapper:"bank" json:"bank"`
	Wallet    WalletType                 `gluamapper:"wallet" json:"wallet"`
	Session   SessionType                `gluamapper:"session" json:"session"`
	Interest  interest.Configuration     `gluamapper:"interest" json:"interest"`
	ClientRPC listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Logging   logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		LedgerFile:    defaultLedgerFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Bank: bank.Configuration{
			MaximumBalance: defaultMaximumBalance,
		},

		Wallet: WalletType{
			OpeningBalance: defaultOpeningBalance,
		},

		Session: SessionType{
			TTL:          defaultSessionTTL,
			NotifyOnJoin: true,
		},

		Interest: interest.DefaultConfiguration(),

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if options.Bank.MaximumBalance < 0 {
		return nil, fmt.Errorf("bank.maximum_balance: %v is negative", options.Bank.MaximumBalance)
	}
	if options.Wallet.OpeningBalance < 0 {
		return nil, fmt.Errorf("wallet.opening_balance: %v is negative", options.Wallet.OpeningBalance)
	}
	if ttl, err := time.ParseDuration(options.Session.TTL); nil != err || ttl <= 0 {
		return nil, fmt.Errorf("session.ttl: %q is not a valid duration", options.Session.TTL)
	}
	if _, err := interest.NewPolicy(options.Interest); nil != err {
		return nil, fmt.Errorf("interest: %s", err)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.LedgerFile,
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// sessionTTL - validated in getConfiguration
func (c *Configuration) sessionTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Session.TTL)
	return ttl
}

// maximumBalance - zero means no limit
func (c *Configuration) maximumBalance() decimal.Decimal {
	return decimal.NewFromFloat(c.Bank.MaximumBalance)
}

func (c *Configuration) openingBalance() decimal.Decimal {
	return decimal.NewFromFloat(c.Wallet.OpeningBalance)
}
