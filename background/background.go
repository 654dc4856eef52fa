// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run long lived goroutines with a common shutdown
package background

import (
	"sync"
)

// Process - a background task, Run must return soon after shutdown closes
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a started set of processes
type T struct {
	sync.Mutex
	shutdown []chan struct{}
	wg       sync.WaitGroup
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		register.shutdown[i] = shutdown
		register.wg.Add(1)
		go func(p Process) {
			defer register.wg.Done()
			p.Run(args, shutdown)
		}(p)
	}
	return register
}

// Stop - signal every process and wait for all of them to return
//
// calling Stop again has no effect
func (t *T) Stop() {
	if nil == t {
		return
	}

	t.Lock()
	for i, shutdown := range t.shutdown {
		if nil != shutdown {
			close(shutdown)
			t.shutdown[i] = nil
		}
	}
	t.Unlock()

	t.wg.Wait()
}
