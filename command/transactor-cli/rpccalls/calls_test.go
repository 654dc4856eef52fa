// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"io/ioutil"
	"net"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/counter"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/fixtures"
	"github.com/mutualcredit/transactord/rpc/mocks"
	"github.com/mutualcredit/transactord/rpc/server"
	"github.com/mutualcredit/transactord/transactionrecord"
)

func setup(t *testing.T) (*gomock.Controller, *mocks.MockParticipant, *Client) {
	fixtures.SetupTestLogger()

	ctl := gomock.NewController(t)
	p := mocks.NewMockParticipant(ctl)

	c := counter.Counter(0)
	r := server.Create(logger.New("test"), p, "1.0", &c)

	clientConn, serverConn := net.Pipe()
	go r.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	return ctl, p, newClient(clientConn, false, ioutil.Discard)
}

func TestInitAndResolve(t *testing.T) {
	ctl, p, client := setup(t)
	defer fixtures.TeardownTestLogger()
	defer ctl.Finish()
	defer client.Close()

	counterparty := fixtures.Key(t, 2).Account()
	value, _ := amount.Parse("64")
	initRef := transactionrecord.Link{1}

	p.EXPECT().BetaInit(gomock.Any(), counterparty, value, "lunch").Return(initRef, nil).Times(1)
	p.EXPECT().BetaWithdraw(gomock.Any(), initRef).Return(transactionrecord.Link{2}, nil).Times(1)
	p.EXPECT().AlphaAccept(gomock.Any(), initRef).Return(transactionrecord.Link{}, fault.NotSpender).Times(1)

	reply, err := client.Init(Beta, counterparty, "64", "lunch")
	assert.Nil(t, err, "init")
	assert.Equal(t, initRef, reply.Link, "init link")

	reply, err = client.Resolve(Beta, "Withdraw", initRef)
	assert.Nil(t, err, "withdraw")
	assert.Equal(t, transactionrecord.Link{2}, reply.Link, "withdraw link")

	_, err = client.Resolve(Alpha, "Accept", initRef)
	assert.NotNil(t, err, "accept")
	assert.Equal(t, fault.NotSpender.Error(), err.Error(), "accept error")
}
