// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package datafile - the durable mirror of the ledger
//
// the whole ledger is kept as a single JSON document:
//
//   {
//     "version": 1,
//     "accounts": {
//       "<account identifier>": { "balance": 100.5 }
//     }
//   }
//
// every save rewrites the complete document; zero balances are never
// written
package datafile

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/util"
)

const (
	currentVersion = 1
	backupTag      = "backup"
	tempSuffix     = ".tmp"
)

type document struct {
	Version  int               `json:"version"`
	Accounts map[string]record `json:"accounts"`
}

type record struct {
	Balance json.Number `json:"balance"`
}

// File - a ledger document on disk
type File struct {
	sync.Mutex
	log      *logger.L
	fileName string
}

// New - create a handle for a document; the file need not exist
func New(fileName string) *File {
	return &File{
		log:      logger.New("datafile"),
		fileName: fileName,
	}
}

// FileName - the document path
func (f *File) FileName() string {
	return f.fileName
}

// Load - read the document
//
// a missing document is an empty ledger; records with a malformed
// identifier or balance are skipped with a warning, as are balances
// that are not positive
func (f *File) Load() (map[account.Identifier]decimal.Decimal, error) {
	f.Lock()
	defer f.Unlock()

	balances := make(map[account.Identifier]decimal.Decimal)

	fd, err := os.Open(f.fileName)
	if os.IsNotExist(err) {
		f.log.Infof("no document: %q  starting empty", f.fileName)
		return balances, nil
	}
	if nil != err {
		return nil, err
	}
	defer fd.Close()

	var doc document
	err = json.NewDecoder(fd).Decode(&doc)
	if io.EOF == err {
		f.log.Warnf("empty document: %q  starting empty", f.fileName)
		return balances, nil
	}
	if nil != err {
		f.log.Errorf("decode: %q  error: %s", f.fileName, err)
		return nil, err
	}

	if 0 != doc.Version && currentVersion != doc.Version {
		f.log.Errorf("document: %q  version: %d  expected: %d", f.fileName, doc.Version, currentVersion)
		return nil, fault.ErrInvalidDocumentVersion
	}

	for key, r := range doc.Accounts {
		id, err := account.FromString(key)
		if nil != err {
			f.log.Warnf("skipping invalid account: %q", key)
			continue
		}
		balance, err := decimal.NewFromString(r.Balance.String())
		if nil != err {
			f.log.Warnf("skipping account: %s  invalid balance: %q", id, r.Balance)
			continue
		}
		if !balance.IsPositive() {
			continue
		}
		balances[id] = balance
	}

	f.log.Infof("loaded: %d accounts from: %q", len(balances), f.fileName)
	return balances, nil
}

// Save - synchronously replace the document
//
// the new document is written to a temporary file, flushed and
// renamed over the old one, so a crash leaves either the old or the
// new document on disk
func (f *File) Save(balances map[account.Identifier]decimal.Decimal) error {
	f.Lock()
	defer f.Unlock()

	data, err := encode(balances)
	if nil != err {
		return err
	}

	tmp := f.fileName + tempSuffix
	if err := writeSynced(tmp, data, os.O_TRUNC); nil != err {
		f.log.Errorf("write: %q  error: %s", tmp, err)
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, f.fileName); nil != err {
		f.log.Errorf("rename: %q  error: %s", tmp, err)
		_ = os.Remove(tmp)
		return err
	}

	syncDirectory(filepath.Dir(f.fileName))

	f.log.Debugf("saved: %d accounts", len(balances))
	return nil
}

// Backup - write an immutable timestamped copy of the current document
//
// returns the name of the backup file; backups are never removed
func (f *File) Backup() (string, error) {
	f.Lock()
	defer f.Unlock()

	data, err := ioutil.ReadFile(f.fileName)
	if os.IsNotExist(err) {
		data, err = encode(nil)
	}
	if nil != err {
		return "", err
	}

	backupName := util.TimestampedName(f.fileName, backupTag, time.Now())
	if err := writeSynced(backupName, data, os.O_EXCL); nil != err {
		f.log.Errorf("backup: %q  error: %s", backupName, err)
		return "", err
	}

	f.log.Infof("backup: %q", backupName)
	return backupName, nil
}

func encode(balances map[account.Identifier]decimal.Decimal) ([]byte, error) {
	doc := document{
		Version:  currentVersion,
		Accounts: make(map[string]record, len(balances)),
	}
	for id, balance := range balances {
		if !balance.IsPositive() {
			continue
		}
		doc.Accounts[id.String()] = record{
			Balance: json.Number(balance.String()),
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

func writeSynced(fileName string, data []byte, flag int) error {
	fd, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|flag, 0600)
	if nil != err {
		return err
	}
	if _, err := fd.Write(data); nil != err {
		fd.Close()
		return err
	}
	if err := fd.Sync(); nil != err {
		fd.Close()
		return err
	}
	return fd.Close()
}

// persist the rename; not all platforms allow a directory sync
func syncDirectory(directory string) {
	d, err := os.Open(directory)
	if nil != err {
		return
	}
	_ = d.Sync()
	d.Close()
}
