// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

// DefaultQueueSize - capacity used when none is given
const DefaultQueueSize = 1000

// Message - a command and its parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - bounded first in first out queue
type Queue struct {
	c chan Message
}

// NewQueue - create a queue holding at most size messages
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - add a message without blocking, false if the queue is full
func (queue *Queue) Send(command string, parameters ...[]byte) bool {
	select {
	case queue.c <- Message{Command: command, Parameters: parameters}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Len - number of waiting messages
func (queue *Queue) Len() int {
	return len(queue.c)
}
