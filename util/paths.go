// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// TimestampedName - derive a sibling file name tagged with the unix
// millisecond time, e.g. data/bank.json -> data/bank_backup_1577836800000.json
func TimestampedName(fileName string, tag string, when time.Time) string {
	dir, base := filepath.Split(fileName)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	millis := when.UnixNano() / int64(time.Millisecond)
	return filepath.Join(dir, stem+"_"+tag+"_"+strconv.FormatInt(millis, 10)+ext)
}
