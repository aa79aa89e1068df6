/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package queue defines the closed error signal produced by the chunk-queue
// data path and the policy contract that reacts to it.
//
// The registry core does not interpret these values; they are the shape that
// overflow-policy handlers dispatched through a registry consume.
package queue

import "sync/atomic"

// Error enumerates the chunk-queue failure conditions. The set is closed:
// the data path produces exactly these two values.
type Error uint8

const (
	// ErrSemaphoreAlreadySet signals that the queue's wakeup primitive was
	// already attached when another attach was attempted.
	ErrSemaphoreAlreadySet Error = iota
	// ErrOverflow signals that the queue capacity was exceeded.
	ErrOverflow
)

// Ensure Error implements error.
var _ error = Error(0)

// Error returns a stable message for the value.
func (e Error) Error() string {
	switch e {
	case ErrSemaphoreAlreadySet:
		return "hrx(queue): semaphore already set"
	case ErrOverflow:
		return "hrx(queue): queue capacity exceeded"
	default:
		return "hrx(queue): unknown error"
	}
}

// String returns the enumerator name.
func (e Error) String() string {
	switch e {
	case ErrSemaphoreAlreadySet:
		return "SemaphoreAlreadySet"
	case ErrOverflow:
		return "Overflow"
	default:
		return "Unknown"
	}
}

// OverflowPolicy decides how the data path reacts to a queue error.
// Implementations are dispatched through a handler registry and must be
// safe for concurrent use.
type OverflowPolicy interface {
	// OnQueueError is invoked once per occurrence, on the producing thread.
	OnQueueError(err Error)
}

// Drop is the default policy: the offending chunk is discarded and the
// occurrence is counted. The zero value is ready to use.
type Drop struct {
	dropped atomic.Uint64
}

// Ensure Drop implements OverflowPolicy.
var _ OverflowPolicy = (*Drop)(nil)

// OnQueueError counts the occurrence and otherwise does nothing.
func (d *Drop) OnQueueError(Error) {
	d.dropped.Add(1)
}

// Dropped returns the number of occurrences seen so far.
func (d *Drop) Dropped() uint64 {
	return d.dropped.Load()
}
