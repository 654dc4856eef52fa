// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/configuration"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/fixtures"
)

const ledgerTemplate = `
local M = {}
M.data_directory = data_directory
M.ledger = {
    max_transaction_amount = "%s",
    max_transaction_fee = 10000,
    transaction_fee_factor = 0.5,
}
return M
`

type dataConfiguration struct {
	DataDirectory string                            `gluamapper:"data_directory"`
	Ledger        configuration.LedgerConfiguration `gluamapper:"ledger"`
}

func writeConfiguration(t *testing.T, fileName string, maxAmount string) {
	text := []byte(fmt.Sprintf(ledgerTemplate, maxAmount))
	if err := ioutil.WriteFile(fileName, text, 0600); nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	return dir
}

func TestParseConfigurationFile(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	fileName := filepath.Join(dir, "transactord.conf")
	writeConfiguration(t, fileName, "3e8")

	var c dataConfiguration
	err := configuration.ParseConfigurationFile(fileName, &c, map[string]string{"data_directory": "/var/lib/transactord"})
	assert.Nil(t, err, "parse")
	assert.Equal(t, "/var/lib/transactord", c.DataDirectory, "variable")
	assert.Equal(t, "3e8", c.Ledger.MaxTransactionAmount, "max amount")
	assert.Equal(t, 0.5, c.Ledger.TransactionFeeFactor, "fee factor")

	limits, err := c.Ledger.Limits()
	assert.Nil(t, err, "limits")
	assert.Equal(t, "3e8", limits.MaxTransactionAmount.String(), "max amount")
	assert.Equal(t, "2710", limits.MaxTransactionFee.String(), "max fee")
	assert.Equal(t, "ba43b7400", limits.CreditLimit.String(), "default credit limit")
}

func TestParseNotATable(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	fileName := filepath.Join(dir, "bad.conf")
	_ = ioutil.WriteFile(fileName, []byte("return 42\n"), 0600)

	var c dataConfiguration
	err := configuration.ParseConfigurationFile(fileName, &c, nil)
	assert.Equal(t, fault.ConfigurationIsNotATable, err, "wrong error")
}

func TestPropertiesReload(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := tempDir(t)
	defer os.RemoveAll(dir)
	fileName := filepath.Join(dir, "transactord.conf")
	writeConfiguration(t, fileName, "3e8")

	p, err := configuration.NewProperties(fileName, nil, logger.New("test"))
	if nil != err {
		t.Fatalf("new properties error: %s", err)
	}

	limits, _ := p.Limits()
	expected, _ := amount.Parse("3e8")
	assert.Equal(t, expected, limits.MaxTransactionAmount, "initial")

	// a bad file keeps the previous values
	writeConfiguration(t, fileName, "not-hex")
	assert.NotNil(t, p.Refresh(), "bad refresh")
	limits, _ = p.Limits()
	assert.Equal(t, expected, limits.MaxTransactionAmount, "kept")

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		p.Run(nil, shutdown)
		close(done)
	}()

	// allow the watcher to be registered
	time.Sleep(100 * time.Millisecond)
	writeConfiguration(t, fileName, "7d0")

	expected, _ = amount.Parse("7d0")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		limits, _ = p.Limits()
		if limits.MaxTransactionAmount == expected {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, expected, limits.MaxTransactionAmount, "reloaded")

	close(shutdown)
	<-done
}
