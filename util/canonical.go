// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/mutualcredit/transactord/fault"
)

// CanonicalIPandPort - make the IP:Port canonical
//
// examples:
//
//	IPv4:  127.0.0.1:1234
//	IPv6:  [::1]:1234
func CanonicalIPandPort(hostPort string) (string, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return "", fault.InvalidIPAddress
	}

	ip := net.ParseIP(strings.TrimSpace(host))
	if nil == ip {
		return "", fault.InvalidIPAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return "", fault.InvalidPortNumber
	}

	if nil != ip.To4() {
		return ip.String() + ":" + strconv.Itoa(numericPort), nil
	}
	return "[" + ip.String() + "]:" + strconv.Itoa(numericPort), nil
}

// ZeroMQAddress - canonical tcp endpoint for a zmq socket
func ZeroMQAddress(hostPort string) (string, error) {
	c, err := CanonicalIPandPort(hostPort)
	if nil != err {
		return "", err
	}
	return "tcp://" + c, nil
}
