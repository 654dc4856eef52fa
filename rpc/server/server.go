// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/counter"
	"github.com/mutualcredit/transactord/rpc/transactor"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, participant transactor.Participant, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(transactor.New(log, participant, start, version, rpcCount))

	return server
}
