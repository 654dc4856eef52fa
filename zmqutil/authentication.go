// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"sync"

	zmq "github.com/pebbe/zmq4"

	"github.com/mutualcredit/transactord/fault"
)

var zap struct {
	once sync.Once
	err  error
}

// Authorise - admit CURVE clients to a server's ZAP domain
//
// only the listed client public keys may connect; with an empty list any
// client is admitted and identity rests on the signed records alone
func Authorise(zapDomain string, clientKeys [][]byte) error {
	if "" == zapDomain {
		return fault.MissingParameters
	}

	encoded := make([]string, 0, len(clientKeys))
	for _, key := range clientKeys {
		if keySize != len(key) {
			return fault.InvalidKeyLength
		}
		encoded = append(encoded, zmq.Z85encode(string(key)))
	}

	zap.once.Do(func() {
		zmq.AuthSetVerbose(false)
		zap.err = zmq.AuthStart()
	})
	if nil != zap.err {
		return zap.err
	}

	if 0 == len(encoded) {
		encoded = append(encoded, zmq.CURVE_ALLOW_ANY)
	}
	zmq.AuthCurveRemoveAll(zapDomain)
	zmq.AuthCurveAdd(zapDomain, encoded...)
	return nil
}
