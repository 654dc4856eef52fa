// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messaging

import (
	"time"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/zmqutil"
)

const (
	protocolName   = "transactor/1"
	defaultTimeout = 10 * time.Second
	serverSignal   = "inproc://transactor-server-signal"
	zapDomain      = "transactor"
)

// Connection - a remote node and the identities it hosts
type Connection struct {
	Identities []string `gluamapper:"identities" json:"identities"`
	Address    string   `gluamapper:"address" json:"address"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Configuration - the peer section of the configuration file
//
// keys are text in the form written by generate-peer-keys
type Configuration struct {
	Listen     []string     `gluamapper:"listen" json:"listen"`
	PrivateKey string       `gluamapper:"private_key" json:"private_key"`
	PublicKey  string       `gluamapper:"public_key" json:"public_key"`
	Timeout    string       `gluamapper:"timeout" json:"timeout"`
	Connect    []Connection `gluamapper:"connect" json:"connect"`
}

// keys - decode this node's key pair
func (configuration *Configuration) keys() ([]byte, []byte, error) {
	privateKey, err := zmqutil.ReadPrivateKey(configuration.PrivateKey)
	if nil != err {
		return nil, nil, err
	}
	publicKey, err := zmqutil.ReadPublicKey(configuration.PublicKey)
	if nil != err {
		return nil, nil, err
	}
	return privateKey, publicKey, nil
}

// clientKeys - the nodes allowed to connect are the configured peers
func (configuration *Configuration) clientKeys() ([][]byte, error) {
	keys := make([][]byte, 0, len(configuration.Connect))
	for _, c := range configuration.Connect {
		key, err := zmqutil.ReadPublicKey(c.PublicKey)
		if nil != err {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// timeout - request timeout, default when unset
func (configuration *Configuration) timeout() (time.Duration, error) {
	if "" == configuration.Timeout {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(configuration.Timeout)
	if nil != err || d <= 0 {
		return 0, fault.InvalidTimeout
	}
	return d, nil
}

// identities - parse the identities served by a connection
func (connection *Connection) identities() ([]*account.Account, error) {
	if 0 == len(connection.Identities) {
		return nil, fault.MissingParameters
	}
	accounts := make([]*account.Account, 0, len(connection.Identities))
	for _, s := range connection.Identities {
		a, err := account.AccountFromBase58(s)
		if nil != err {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
