// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS listener serving JSON-RPC
package listeners

// Listener - accepts connections until stopped
type Listener interface {
	Serve() error
	Stop()
}
