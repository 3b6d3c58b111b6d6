// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk key/value store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// The account balances themselves are not kept here; they live in the
// JSON document maintained by the datafile package.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. account      = 16 byte account identifier
// 4. intent id    = 16 byte random identifier
//
// Intents:
//
//   I ++ intent id             - unfinished transfer between wallet and bank
//                                data: JSON intent record
//
// Wallet:
//
//   W ++ account               - local wallet balance
//                                data: decimal text
//
// Testing:
//   Z ++ key                   - testing data
package storage
