// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown() {
	storage.Finalise()
	removeFiles()
}

func TestPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown()

	p := storage.Pool.TestData

	value, err := p.Get([]byte("/nonexistent"))
	assert.Nil(t, err, "missing key is not an error")
	assert.Nil(t, value, "missing key has a value")

	err = p.Put([]byte("key-one"), []byte("data-one"))
	assert.Nil(t, err, "put error")

	value, err = p.Get([]byte("key-one"))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("data-one"), value, "wrong value")

	found, err := p.Has([]byte("key-one"))
	assert.Nil(t, err, "has error")
	assert.True(t, found, "key not found")

	err = p.Delete([]byte("key-one"))
	assert.Nil(t, err, "delete error")

	found, err = p.Has([]byte("key-one"))
	assert.Nil(t, err, "has error")
	assert.False(t, found, "deleted key found")
}

func TestPoolsAreSeparate(t *testing.T) {
	setup(t)
	defer teardown()

	err := storage.Pool.TestData.Put([]byte("shared"), []byte("test"))
	assert.Nil(t, err, "put error")
	err = storage.Pool.Wallet.Put([]byte("shared"), []byte("wallet"))
	assert.Nil(t, err, "put error")

	elements, err := storage.Pool.TestData.Elements()
	assert.Nil(t, err, "elements error")
	assert.Equal(t, []storage.Element{{Key: []byte("shared"), Value: []byte("test")}}, elements, "pool leaked")

	value, err := storage.Pool.Wallet.Get([]byte("shared"))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("wallet"), value, "wrong wallet value")
}

func TestMapOrderAndStop(t *testing.T) {
	setup(t)
	defer teardown()

	p := storage.Pool.TestData
	for _, k := range []string{"key-c", "key-a", "key-b"} {
		assert.Nil(t, p.Put([]byte(k), []byte("v")), "put error")
	}

	keys := []string{}
	err := p.Map(func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, []string{"key-a", "key-b", "key-c"}, keys, "wrong order")

	stop := errors.New("stop")
	count := 0
	err = p.Map(func(key []byte, value []byte) error {
		count += 1
		return stop
	})
	assert.Equal(t, stop, err, "wrong error")
	assert.Equal(t, 1, count, "did not stop")
}

func TestDoubleInitialise(t *testing.T) {
	setup(t)
	defer teardown()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialise accepted")
}
