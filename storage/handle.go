// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/bankd/fault"
)

// Handle - the actions allowed on a pool
type Handle interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Map(func(key []byte, value []byte) error) error
}

// PoolHandle - a prefixed section of the database
type PoolHandle struct {
	prefix   byte
	database *leveldb.DB
}

// every write is flushed to disk before returning
var syncWrite = &ldb_opt.WriteOptions{Sync: true}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}
	return p.database.Put(p.prefixKey(key), value, syncWrite)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}
	return p.database.Delete(p.prefixKey(key), syncWrite)
}

// Get - read a value for a given key
//
// a missing key returns nil without error
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return nil, fault.ErrNotInitialised
	}
	value, err := p.database.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return false, fault.ErrNotInitialised
	}
	return p.database.Has(p.prefixKey(key), nil)
}

// Map - call a function for every element of the pool in key order
//
// key and value are copies; iteration stops at the first error
func (p *PoolHandle) Map(f func(key []byte, value []byte) error) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}

	iter := p.database.NewIterator(ldb_util.BytesPrefix([]byte{p.prefix}), nil)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		if err := f(dataKey, dataValue); nil != err {
			return err
		}
	}
	return iter.Error()
}

// Elements - fetch all elements of the pool in key order
func (p *PoolHandle) Elements() ([]Element, error) {
	elements := make([]Element, 0)
	err := p.Map(func(key []byte, value []byte) error {
		elements = append(elements, Element{Key: key, Value: value})
		return nil
	})
	return elements, err
}
