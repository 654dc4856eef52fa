// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/counter"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/fixtures"
	"github.com/mutualcredit/transactord/rpc/certificate"
	"github.com/mutualcredit/transactord/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func tlsSetup(t *testing.T) (*tls.Config, [32]byte) {
	dir, err := ioutil.TempDir("", "listeners")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	if err := certificate.MakeSelfSigned("test", certificateFile, keyFile, nil); nil != err {
		t.Fatalf("make certificate error: %s", err)
	}
	cer, _ := ioutil.ReadFile(certificateFile)
	key, _ := ioutil.ReadFile(keyFile)

	tlsConfig, fingerprint, err := certificate.Get(logger.New("test"), "test", string(cer), string(key))
	if nil != err {
		t.Fatalf("get certificate error: %s", err)
	}
	return tlsConfig, fingerprint
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{fmt.Sprintf("127.0.0.1:%d", port)},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	if nil != err {
		t.Fatalf("register with error: %s", err)
	}

	tlsConfig, fingerprint := tlsSetup(t)

	l, err := listeners.NewRPC(&con, logger.New("test"), &count, s, tlsConfig, fingerprint)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Stop()

	c, err := tls.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port), &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	defer client.Close()

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "connection not counted")
}

func TestRpcListenerConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	count := counter.Counter(0)
	s := rpc.NewServer()

	tests := []struct {
		con listeners.RPCConfiguration
		err error
	}{
		{listeners.RPCConfiguration{MaximumConnections: 0, Listen: []string{"127.0.0.1:2130"}}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{}}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"not-an-ip:2130"}}, fault.InvalidIPAddress},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{""}}, fault.InvalidIPAddress},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"*:2130", "[::1]:2130"}}, nil},
	}

	for i, item := range tests {
		_, err := listeners.NewRPC(&item.con, logger.New("test"), &count, s, &tls.Config{}, [32]byte{})
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}
