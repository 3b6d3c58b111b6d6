// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bankd/configuration"
	"github.com/bitmark-inc/bankd/fault"
)

type interestSection struct {
	Enabled  bool    `gluamapper:"enabled"`
	Interval string  `gluamapper:"interval"`
	Rate     float64 `gluamapper:"rate"`
}

type testConfiguration struct {
	DataDirectory string          `gluamapper:"data_directory"`
	Listen        []string        `gluamapper:"listen"`
	Interest      interestSection `gluamapper:"interest"`
}

func writeConfiguration(t *testing.T, text string) (string, func()) {
	dir, err := ioutil.TempDir("", "configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "test.conf")
	if err := ioutil.WriteFile(fileName, []byte(text), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return fileName, func() { os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.listen = { "127.0.0.1:2130", "[::1]:2130" }
M.interest = {
    enabled = true,
    interval = "12h",
    rate = 0.02,
}
return M
`)
	defer cleanup()

	var c testConfiguration
	err := configuration.ParseConfigurationFile(fileName, &c)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, ".", c.DataDirectory, "wrong data directory")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, c.Listen, "wrong listen")
	assert.True(t, c.Interest.Enabled, "wrong enabled")
	assert.Equal(t, "12h", c.Interest.Interval, "wrong interval")
	assert.Equal(t, 0.02, c.Interest.Rate, "wrong rate")
}

func TestParseConfigurationFileNotTable(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `return 42`)
	defer cleanup()

	var c testConfiguration
	err := configuration.ParseConfigurationFile(fileName, &c)
	assert.Equal(t, fault.ErrConfigurationNotTable, err, "non table accepted")
}

func TestParseConfigurationFileBadPointer(t *testing.T) {
	var c testConfiguration
	err := configuration.ParseConfigurationFile("unused", c)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non pointer accepted")
}
