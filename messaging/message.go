// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messaging

import (
	"context"
	"encoding/json"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/chain"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// Command - name of a request
type Command string

// the commands a node answers
const (
	// ask the counterparty to countersign an accept and commit it first
	Countersign Command = "countersign"

	// hand over a committed record with its author's prior chain
	Deliver Command = "deliver"
)

// Message - one request
type Message struct {
	Command Command          `json:"command"`
	From    *account.Account `json:"from"`
	Payload json.RawMessage  `json:"payload"`
}

// Reply - payload on success, otherwise the error class and text
type Reply struct {
	Payload json.RawMessage `json:"payload,omitempty"`
	Class   string          `json:"class,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CountersignRequest - signed accept awaiting the counterparty
type CountersignRequest struct {
	Record transactionrecord.Packed `json:"record"`
}

// CountersignReply - the accept with both signatures
type CountersignReply struct {
	Record transactionrecord.Packed `json:"record"`
}

// Delivery - a committed record and the chain it was appended to
type Delivery struct {
	Header  *chain.Header            `json:"header"`
	Record  transactionrecord.Packed `json:"record"`
	Package *chain.Package           `json:"package"`
}

// Messenger - send a request to the node of an identity
type Messenger interface {
	Send(ctx context.Context, target *account.Account, message *Message) (*Reply, error)
}

// Handler - answer a request, the result is encoded as the payload
type Handler interface {
	Handle(ctx context.Context, message *Message) (interface{}, error)
}

// NewMessage - build a message with an encoded payload
func NewMessage(command Command, from *account.Account, payload interface{}) (*Message, error) {
	if "" == command || nil == from {
		return nil, fault.MissingParameters
	}
	data, err := json.Marshal(payload)
	if nil != err {
		return nil, err
	}
	return &Message{
		Command: command,
		From:    from,
		Payload: data,
	}, nil
}

// Decode - decode the payload of a message
func (message *Message) Decode(v interface{}) error {
	if nil == message || 0 == len(message.Payload) {
		return fault.MessageIsInvalid
	}
	err := json.Unmarshal(message.Payload, v)
	if nil != err {
		return fault.MessageIsInvalid
	}
	return nil
}

// NewReply - reply for a handler result
func NewReply(result interface{}, err error) *Reply {
	if nil != err {
		return &Reply{
			Class: fault.Class(err),
			Error: err.Error(),
		}
	}
	data, err := json.Marshal(result)
	if nil != err {
		return &Reply{
			Class: fault.Class(fault.MessageIsInvalid),
			Error: fault.MessageIsInvalid.Error(),
		}
	}
	return &Reply{Payload: data}
}

// Err - the error the receiver reported, nil on success
func (reply *Reply) Err() error {
	if nil == reply {
		return fault.NoResponseFromPeer
	}
	if "" == reply.Error {
		return nil
	}
	return fault.Rebuild(reply.Class, reply.Error)
}

// Decode - decode a successful reply payload
func (reply *Reply) Decode(v interface{}) error {
	if err := reply.Err(); nil != err {
		return err
	}
	if 0 == len(reply.Payload) {
		return fault.MessageIsInvalid
	}
	err := json.Unmarshal(reply.Payload, v)
	if nil != err {
		return fault.MessageIsInvalid
	}
	return nil
}

// dispatch one encoded request to a handler and encode its reply
func dispatch(ctx context.Context, handler Handler, request []byte) []byte {
	var reply *Reply

	message := &Message{}
	err := json.Unmarshal(request, message)
	if nil != err || "" == message.Command || nil == message.From {
		reply = NewReply(nil, fault.MessageIsInvalid)
	} else {
		reply = NewReply(handler.Handle(ctx, message))
	}

	return encodeReply(reply)
}

func encodeReply(reply *Reply) []byte {
	data, err := json.Marshal(reply)
	if nil != err {
		// only raw payload bytes can fail and they came from json
		data = []byte(`{"class":"format","error":"message is invalid"}`)
	}
	return data
}
