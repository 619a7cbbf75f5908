// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mutex

import (
	"errors"
	"io"
)

// Forever is the conventional timeout for an indefinite wait.  Any negative timeout has the same effect.
const Forever float64 = -1

var (
	// ErrClosed is returned when a mutex is closed more than once
	ErrClosed = errors.New("the mutex has been closed")
)

// Interface is the portable mutex.
type Interface interface {
	// Lock attempts to acquire the mutex.  A negative timeout blocks until the mutex is acquired.
	// Otherwise Lock blocks for at most timeoutMs milliseconds.  The return value is true if the
	// mutex was acquired and false on timeout.
	Lock(timeoutMs float64) bool

	// Unlock releases the mutex.  It returns false if the underlying release failed, for example
	// because the mutex was not held.
	Unlock() bool
}

// Closeable is a mutex which owns a native resource.  Close releases that resource exactly once;
// subsequent calls return ErrClosed.  A mutex should not be held when it is closed.
type Closeable interface {
	io.Closer
	Interface
}

// Guard locks m, runs f, and unlocks m.  If the lock times out, f is not run and Guard
// returns false.  The error is whatever f returned.
func Guard(m Interface, timeoutMs float64, f func() error) (bool, error) {
	if !m.Lock(timeoutMs) {
		return false, nil
	}

	defer m.Unlock()
	return true, f()
}
