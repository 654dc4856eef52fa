// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messaging - request/reply exchange between identities
//
// a message names a command and carries a JSON payload; the reply
// carries either a JSON payload or an error with its class so that
// the sender sees the same error value the receiver produced.
//
// Two transports share the Messenger interface: Router connects
// handlers in one process and Peers sends over CURVE secured ZeroMQ
// REQ/REP sockets to the Server of each configured peer.
package messaging
