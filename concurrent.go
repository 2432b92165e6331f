//go:build linux

/*
	Copyright 2023 Loophole Labs

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

package uring

import (
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// ConcurrentRing wraps a Ring for use from multiple goroutines.
// Submission is serialized with a mutex, so the local unsynchronized
// SQ tail stays consistent. Completion consumption claims events with a
// compare-and-swap on the shared head, so no event is handed out twice.
//
// The wrapped Ring must not be used directly while the wrapper is in use.
type ConcurrentRing struct {
	ring *Ring
	mu   sync.Mutex
}

// NewConcurrentRing creates a ring with the given number of entries and
// setup flags and wraps it for concurrent use.
func NewConcurrentRing(entries uint32, flags Setup) (*ConcurrentRing, error) {
	ring, err := NewRing()
	if err != nil {
		return nil, err
	}
	err = ring.QueueInit(entries, uint32(flags))
	if err != nil {
		return nil, err
	}
	return &ConcurrentRing{ring: ring}, nil
}

// WrapConcurrent wraps an already initialized ring.
func WrapConcurrent(ring *Ring) *ConcurrentRing {
	return &ConcurrentRing{ring: ring}
}

// Ring returns the wrapped ring for operations that are safe to share,
// such as registration.
func (c *ConcurrentRing) Ring() *Ring {
	return c.ring
}

// Push acquires one submission queue entry, hands it to prepare, and
// publishes it. Returns syscall.EBUSY when the submission queue is full;
// the caller should Submit and retry.
func (c *ConcurrentRing) Push(prepare func(*SQEntry)) error {
	c.mu.Lock()
	sqe := c.ring.GetSQEntry()
	if sqe == nil {
		c.mu.Unlock()
		return syscall.EBUSY
	}
	prepare(sqe)
	c.mu.Unlock()
	return nil
}

// Submit flushes published entries to the kernel.
func (c *ConcurrentRing) Submit() (uint, error) {
	c.mu.Lock()
	submitted, err := c.ring.Submit()
	c.mu.Unlock()
	return submitted, err
}

// SubmitAndWait flushes published entries and waits for at least waitNR
// completions.
func (c *ConcurrentRing) SubmitAndWait(waitNR uint32) (uint, error) {
	c.mu.Lock()
	submitted, err := c.ring.SubmitAndWait(waitNR)
	c.mu.Unlock()
	return submitted, err
}

// Pop claims the completion at the queue head. Unlike PeekCQEvent it
// returns the event by value: the ring slot may be reused by the kernel
// as soon as the head moves, and here it moves before the caller looks
// at the event.
func (c *ConcurrentRing) Pop() (CQEvent, bool) {
	for {
		head := atomic.LoadUint32(c.ring.CQ.KHead)
		tail := atomic.LoadUint32(c.ring.CQ.KTail)
		if head == tail {
			return CQEvent{}, false
		}
		cqe := *(*CQEvent)(unsafe.Add(unsafe.Pointer(c.ring.CQ.CQEs), uintptr(head&c.ring.CQ.RingMask)*cqEventSize))
		if atomic.CompareAndSwapUint32(c.ring.CQ.KHead, head, head+1) {
			return cqe, true
		}
	}
}

// Len reports how many completions are ready.
func (c *ConcurrentRing) Len() uint32 {
	return atomic.LoadUint32(c.ring.CQ.KTail) - atomic.LoadUint32(c.ring.CQ.KHead)
}

// Close releases the wrapped ring.
func (c *ConcurrentRing) Close() error {
	c.mu.Lock()
	err := c.ring.Close()
	c.mu.Unlock()
	return err
}
