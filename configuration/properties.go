// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/mutualcredit/transactord/ledger"
)

// LedgerConfiguration - the ledger block of the configuration file
//
// amounts may be hex strings or Lua numbers
type LedgerConfiguration struct {
	MaxTransactionAmount interface{} `gluamapper:"max_transaction_amount" json:"max_transaction_amount"`
	MaxTransactionFee    interface{} `gluamapper:"max_transaction_fee" json:"max_transaction_fee"`
	TransactionFeeFactor float64     `gluamapper:"transaction_fee_factor" json:"transaction_fee_factor"`
	CreditLimit          interface{} `gluamapper:"credit_limit" json:"credit_limit"`
}

// Limits - convert and check the configured values
func (c LedgerConfiguration) Limits() (ledger.Limits, error) {
	return ledger.NewLimits(c.MaxTransactionAmount, c.MaxTransactionFee, c.TransactionFeeFactor, c.CreditLimit)
}

type ledgerFile struct {
	Ledger LedgerConfiguration `gluamapper:"ledger"`
}

// Properties - ledger limits that follow the configuration file
type Properties struct {
	sync.RWMutex
	log       *logger.L
	fileName  string
	variables map[string]string
	limits    ledger.Limits
}

// NewProperties - read the initial ledger block
func NewProperties(fileName string, variables map[string]string, log *logger.L) (*Properties, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}
	p := &Properties{
		log:       log,
		fileName:  fileName,
		variables: variables,
	}
	if err := p.Refresh(); nil != err {
		return nil, err
	}
	return p, nil
}

// Limits - a consistent snapshot of the current values
func (p *Properties) Limits() (ledger.Limits, error) {
	p.RLock()
	defer p.RUnlock()
	return p.limits, nil
}

// Refresh - reread the file, keeping the old values on any error
func (p *Properties) Refresh() error {
	var f ledgerFile
	if err := ParseConfigurationFile(p.fileName, &f, p.variables); nil != err {
		return err
	}
	limits, err := f.Ledger.Limits()
	if nil != err {
		return err
	}

	p.Lock()
	p.limits = limits
	p.Unlock()

	p.log.Infof("ledger limits: %+v", limits)
	return nil
}

// Run - background process reloading on file change
//
// the directory is watched so that editors replacing the file by
// rename are still seen
func (p *Properties) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		<-shutdown
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.fileName)); nil != err {
		log.Errorf("watcher add error: %s", err)
		<-shutdown
		return
	}

	base := filepath.Base(p.fileName)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case event := <-watcher.Events:
			if filepath.Base(event.Name) != base || !isChange(event) {
				continue loop
			}
			log.Infof("file event: %v", event)
			if _, err := os.Stat(p.fileName); nil != err {
				log.Warnf("configuration file: %s", err)
				continue loop
			}
			if err := p.Refresh(); nil != err {
				log.Errorf("reload: %s keeping previous limits", err)
			}
		case err := <-watcher.Errors:
			log.Errorf("watcher error: %s", err)
		}
	}
	log.Info("stopped")
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
