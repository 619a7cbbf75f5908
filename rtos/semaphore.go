// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rtos

import (
	"go.uber.org/atomic"
)

// Semaphore is a kernel mutex handle.  Handles are created by an API and are opaque to callers.
type Semaphore struct {
	id uint64

	// c holds a token while the mutex is taken
	c chan struct{}

	deleted atomic.Bool
	gone    chan struct{}
}

func newSemaphore(id uint64) *Semaphore {
	return &Semaphore{
		id:   id,
		c:    make(chan struct{}, 1),
		gone: make(chan struct{}),
	}
}

// ID is the kernel-assigned identifier of this handle, useful in logs.
func (s *Semaphore) ID() uint64 {
	return s.id
}

func (s *Semaphore) tryTake() bool {
	select {
	case s.c <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Semaphore) give() bool {
	select {
	case <-s.c:
		return true
	default:
		return false
	}
}

// markDeleted returns true only for the first caller
func (s *Semaphore) markDeleted() bool {
	if s.deleted.CompareAndSwap(false, true) {
		close(s.gone)
		return true
	}

	return false
}
