// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/util"
)

const (
	identifierSize = 32
	pollInterval   = 100 * time.Millisecond
)

// Client - REQ connection to one server
type Client struct {
	sync.Mutex
	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	v6              bool
	socket          *zmq.Socket
	timeout         time.Duration
}

// NewClient - client with its own CURVE keys, not yet connected
func NewClient(privateKey []byte, publicKey []byte, timeout time.Duration) (*Client, error) {

	if keySize != len(publicKey) || keySize != len(privateKey) {
		return nil, fault.InvalidKeyLength
	}
	if timeout <= 0 {
		return nil, fault.InvalidTimeout
	}

	client := &Client{
		publicKey:       make([]byte, keySize),
		privateKey:      make([]byte, keySize),
		serverPublicKey: make([]byte, keySize),
		timeout:         timeout,
	}
	copy(client.privateKey, privateKey)
	copy(client.publicKey, publicKey)
	return client, nil
}

// create a socket and connect to the server with its key
func (client *Client) openSocket() error {

	socket, err := zmq.NewSocket(zmq.REQ)
	if nil != err {
		return err
	}

	// local identity is a random value
	randomIdentifier := make([]byte, identifierSize)
	_, err = rand.Read(randomIdentifier)
	if nil != err {
		goto failure
	}
	err = socket.SetIdentity(string(randomIdentifier))
	if nil != err {
		goto failure
	}

	// set up as client
	err = socket.SetCurveServer(0)
	if nil != err {
		goto failure
	}
	err = socket.SetCurvePublickey(string(client.publicKey))
	if nil != err {
		goto failure
	}
	err = socket.SetCurveSecretkey(string(client.privateKey))
	if nil != err {
		goto failure
	}
	err = socket.SetCurveServerkey(string(client.serverPublicKey))
	if nil != err {
		goto failure
	}

	err = socket.SetSndtimeo(client.timeout)
	if nil != err {
		goto failure
	}
	err = socket.SetLinger(0)
	if nil != err {
		goto failure
	}
	err = socket.SetReqCorrelate(1)
	if nil != err {
		goto failure
	}
	err = socket.SetReqRelaxed(1)
	if nil != err {
		goto failure
	}

	err = socket.SetIpv6(client.v6)
	if nil != err {
		goto failure
	}
	err = socket.Connect(client.address)
	if nil != err {
		goto failure
	}

	client.socket = socket
	return nil

failure:
	socket.Close()
	return err
}

func (client *Client) closeSocket() error {
	if nil == client.socket {
		return nil
	}
	if "" != client.address {
		_ = client.socket.Disconnect(client.address)
	}
	err := client.socket.Close()
	client.socket = nil
	return err
}

// Connect - drop any existing connection and connect to host:port
func (client *Client) Connect(hostPort string, serverPublicKey []byte) error {
	if keySize != len(serverPublicKey) {
		return fault.InvalidKeyLength
	}
	address, err := util.ZeroMQAddress(hostPort)
	if nil != err {
		return err
	}

	client.Lock()
	defer client.Unlock()

	err = client.closeSocket()
	if nil != err {
		return err
	}

	copy(client.serverPublicKey, serverPublicKey)
	client.address = address
	client.v6 = strings.Contains(address, "[")

	return client.openSocket()
}

// IsConnected - check if a server address is set
func (client *Client) IsConnected() bool {
	client.Lock()
	defer client.Unlock()
	return nil != client.socket
}

// Request - send one multipart request and wait for its reply
//
// on timeout or cancellation the socket is recreated so a late reply
// cannot be taken as the answer to the next request
func (client *Client) Request(ctx context.Context, frames ...[]byte) ([][]byte, error) {
	client.Lock()
	defer client.Unlock()

	if nil == client.socket {
		return nil, fault.NotConnected
	}

	last := len(frames) - 1
	for i, frame := range frames {
		flag := zmq.SNDMORE
		if i == last {
			flag = 0
		}
		_, err := client.socket.SendBytes(frame, flag)
		if nil != err {
			_ = client.reopen()
			return nil, fault.Collaborator("send", err)
		}
	}

	poller := zmq.NewPoller()
	poller.Add(client.socket, zmq.POLLIN)

	deadline := time.Now().Add(client.timeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			_ = client.reopen()
			return nil, fault.NoResponseFromPeer
		default:
		}

		polled, err := poller.Poll(pollInterval)
		if nil != err {
			_ = client.reopen()
			return nil, fault.Collaborator("poll", err)
		}
		if 0 == len(polled) {
			continue
		}
		data, err := client.socket.RecvMessageBytes(0)
		if nil != err {
			_ = client.reopen()
			return nil, fault.Collaborator("receive", err)
		}
		return data, nil
	}

	_ = client.reopen()
	return nil, fault.NoResponseFromPeer
}

func (client *Client) reopen() error {
	err := client.closeSocket()
	if nil != err {
		return err
	}
	return client.openSocket()
}

// Close - disconnect and close
func (client *Client) Close() error {
	client.Lock()
	defer client.Unlock()
	return client.closeSocket()
}

// String - the server address
func (client *Client) String() string {
	return client.address
}
