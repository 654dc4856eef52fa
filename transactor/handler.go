// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"context"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/messaging"
)

// Handle - answer a request from another node
func (node *Node) Handle(ctx context.Context, message *messaging.Message) (interface{}, error) {
	if nil == message || nil == message.From {
		return nil, fault.MissingParameters
	}

	node.Lock()
	defer node.Unlock()

	node.log.Debugf("request: %q  from: %s", message.Command, message.From)

	switch message.Command {
	case messaging.Countersign:
		return node.countersign(message)
	case messaging.Deliver:
		return node.receive(message)
	default:
		return nil, fault.UnknownCommand
	}
}
