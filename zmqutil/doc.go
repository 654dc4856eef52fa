// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqutil - CURVE secured ZeroMQ sockets for peer requests
//
// servers bind REP sockets that accept any client key; clients use
// REQ sockets with a reply timeout, after which the socket is
// recreated so that the next request starts clean
package zmqutil
