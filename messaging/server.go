// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messaging

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/zmqutil"
)

// Server - answers requests from remote nodes
type Server struct {
	log     *logger.L
	handler Handler
	timeout time.Duration

	socket4 *zmq.Socket
	socket6 *zmq.Socket
	push    *zmq.Socket
	pull    *zmq.Socket
}

// NewServer - bind the listen addresses, Run starts answering
func NewServer(configuration *Configuration, handler Handler) (*Server, error) {
	if nil == configuration || nil == handler {
		return nil, fault.MissingParameters
	}

	log := logger.New("server")

	privateKey, publicKey, err := configuration.keys()
	if nil != err {
		log.Errorf("key error: %s", err)
		return nil, err
	}
	timeout, err := configuration.timeout()
	if nil != err {
		return nil, err
	}

	clientKeys, err := configuration.clientKeys()
	if nil != err {
		return nil, err
	}
	err = zmqutil.Authorise(zapDomain, clientKeys)
	if nil != err {
		log.Errorf("authorise error: %s", err)
		return nil, err
	}
	log.Infof("authorised clients: %d", len(clientKeys))

	server := &Server{
		log:     log,
		handler: handler,
		timeout: timeout,
	}

	server.push, server.pull, err = zmqutil.NewSignalPair(serverSignal)
	if nil != err {
		return nil, err
	}

	server.socket4, server.socket6, err = zmqutil.NewBind(log, zmq.REP, zapDomain, privateKey, publicKey, configuration.Listen)
	if nil != err {
		log.Errorf("bind error: %s", err)
		server.push.Close()
		server.pull.Close()
		return nil, err
	}

	return server, nil
}

// Run - wait for incoming requests, process them and reply
func (server *Server) Run(args interface{}, shutdown <-chan struct{}) {

	log := server.log

	log.Info("starting…")

	done := make(chan struct{})
	go func() {
		defer close(done)

		poller := zmqutil.NewPoller()
		if nil != server.socket4 {
			poller.Add(server.socket4, zmq.POLLIN)
		}
		if nil != server.socket6 {
			poller.Add(server.socket6, zmq.POLLIN)
		}
		poller.Add(server.pull, zmq.POLLIN)
	loop:
		for {
			sockets, err := poller.Poll(-1)
			if nil != err {
				log.Errorf("poll error: %s", err)
				continue
			}
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case server.pull:
					_, _ = s.RecvMessageBytes(0)
					break loop
				default:
					server.process(s)
				}
			}
		}
		log.Info("shutting down")
		server.pull.Close()
		if nil != server.socket4 {
			server.socket4.Close()
		}
		if nil != server.socket6 {
			server.socket6.Close()
		}
		log.Info("stopped")
	}()

	// wait for shutdown
	<-shutdown
	log.Info("initiate shutdown")
	_, _ = server.push.SendMessage("stop")
	<-done
	server.push.Close()
}

// process one request and send its reply
func (server *Server) process(socket *zmq.Socket) {

	log := server.log

	data, err := socket.RecvMessageBytes(0)
	if nil != err {
		log.Errorf("receive error: %s", err)
		return
	}

	var result []byte
	if 2 != len(data) || protocolName != string(data[0]) {
		log.Warnf("malformed request: %d frames", len(data))
		result = encodeReply(NewReply(nil, fault.MessageIsInvalid))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), server.timeout)
		result = dispatch(ctx, server.handler, data[1])
		cancel()
	}

	_, err = socket.SendMessage(protocolName, result)
	if nil != err {
		log.Errorf("send error: %s", err)
	}
}
