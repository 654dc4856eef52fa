// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messaging

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/zmqutil"
)

// Peers - sends messages to the configured remote nodes
type Peers struct {
	sync.RWMutex
	log     *logger.L
	clients map[string]*zmqutil.Client // identity → node serving it
	all     []*zmqutil.Client
}

// NewPeers - one client per configured connection
func NewPeers(configuration *Configuration) (*Peers, error) {
	if nil == configuration {
		return nil, fault.MissingParameters
	}

	log := logger.New("peers")

	privateKey, publicKey, err := configuration.keys()
	if nil != err {
		return nil, err
	}
	timeout, err := configuration.timeout()
	if nil != err {
		return nil, err
	}

	peers := &Peers{
		log:     log,
		clients: make(map[string]*zmqutil.Client),
	}

	for i, c := range configuration.Connect {
		identities, err := c.identities()
		if nil != err {
			log.Errorf("connect[%d]: identities error: %s", i, err)
			peers.Close()
			return nil, err
		}
		serverPublicKey, err := zmqutil.ReadPublicKey(c.PublicKey)
		if nil != err {
			log.Errorf("connect[%d]: public key error: %s", i, err)
			peers.Close()
			return nil, err
		}
		client, err := zmqutil.NewClient(privateKey, publicKey, timeout)
		if nil != err {
			peers.Close()
			return nil, err
		}
		err = client.Connect(c.Address, serverPublicKey)
		if nil != err {
			log.Errorf("connect[%d]: %q error: %s", i, c.Address, err)
			peers.Close()
			return nil, err
		}
		log.Infof("connect[%d]: %q serving %d identities", i, client, len(identities))

		peers.all = append(peers.all, client)
		for _, identity := range identities {
			peers.clients[identity.String()] = client
		}
	}
	return peers, nil
}

// Send - send to the node serving the target identity
func (peers *Peers) Send(ctx context.Context, target *account.Account, message *Message) (*Reply, error) {
	if nil == target || nil == message {
		return nil, fault.MissingParameters
	}

	peers.RLock()
	client, ok := peers.clients[target.String()]
	peers.RUnlock()
	if !ok {
		return nil, fault.PeerNotFound
	}

	request, err := json.Marshal(message)
	if nil != err {
		return nil, err
	}

	data, err := client.Request(ctx, []byte(protocolName), request)
	if nil != err {
		peers.log.Warnf("%s: %q failed: %s", client, message.Command, err)
		return nil, err
	}
	if 2 != len(data) || protocolName != string(data[0]) {
		return nil, fault.MessageIsInvalid
	}

	reply := &Reply{}
	err = json.Unmarshal(data[1], reply)
	if nil != err {
		return nil, fault.MessageIsInvalid
	}
	return reply, nil
}

// Close - close every connection
func (peers *Peers) Close() {
	peers.Lock()
	defer peers.Unlock()
	for _, client := range peers.all {
		_ = client.Close()
	}
	peers.all = nil
	peers.clients = make(map[string]*zmqutil.Client)
}
