// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messaging

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
)

// Router - in process transport between the nodes of one process
//
// messages pass through their JSON encoding exactly as on the network
type Router struct {
	sync.RWMutex
	handlers map[string]Handler
	offline  map[string]bool
}

// NewRouter - an empty router
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]Handler),
		offline:  make(map[string]bool),
	}
}

// Register - attach the handler for an identity
func (router *Router) Register(identity *account.Account, handler Handler) {
	router.Lock()
	defer router.Unlock()
	router.handlers[identity.String()] = handler
}

// SetOnline - simulate an identity's node going away or coming back
func (router *Router) SetOnline(identity *account.Account, online bool) {
	router.Lock()
	defer router.Unlock()
	router.offline[identity.String()] = !online
}

// Send - deliver a message to the target's handler
//
// gives up with the context as a network peer would; the handler may
// still complete afterwards
func (router *Router) Send(ctx context.Context, target *account.Account, message *Message) (*Reply, error) {
	if nil == target || nil == message {
		return nil, fault.MissingParameters
	}

	router.RLock()
	handler, ok := router.handlers[target.String()]
	offline := router.offline[target.String()]
	router.RUnlock()

	if !ok {
		return nil, fault.PeerNotFound
	}
	if offline {
		return nil, fault.NoResponseFromPeer
	}

	request, err := json.Marshal(message)
	if nil != err {
		return nil, err
	}

	done := make(chan []byte, 1)
	go func() {
		done <- dispatch(ctx, handler, request)
	}()

	var response []byte
	select {
	case response = <-done:
	case <-ctx.Done():
		return nil, fault.NoResponseFromPeer
	}

	reply := &Reply{}
	err = json.Unmarshal(response, reply)
	if nil != err {
		return nil, fault.MessageIsInvalid
	}
	return reply, nil
}
