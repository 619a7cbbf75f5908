// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package freertos

import (
	"github.com/xmidt-org/osal/fatal"
	"github.com/xmidt-org/osal/mutex"
	"github.com/xmidt-org/osal/rtos"
	"github.com/xmidt-org/sallust"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Option configures a Mutex
type Option func(*Mutex)

// WithLogger sets the logger for lifecycle and release-failure diagnostics.
// A nil logger selects sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(m *Mutex) {
		if l != nil {
			m.logger = l
		} else {
			m.logger = sallust.Default()
		}
	}
}

// Mutex is a mutex.Closeable backed by a kernel mutex handle.  The handle is created by NewMutex
// and owned exclusively by this Mutex until Close.
type Mutex struct {
	api    rtos.API
	handle *rtos.Semaphore
	logger *zap.Logger
	closed atomic.Bool
}

var _ mutex.Closeable = (*Mutex)(nil)

// NewMutex creates the kernel mutex.  If the kernel cannot allocate one, the failure is reported
// through fatal.Assert; there is no error return.
func NewMutex(api rtos.API, o ...Option) *Mutex {
	fatal.Assert(api != nil, "a kernel API is required")

	m := &Mutex{
		api:    api,
		logger: sallust.Default(),
	}

	for _, f := range o {
		f(m)
	}

	m.handle = api.SemaphoreCreateMutex()
	fatal.Assert(m.handle != nil, "unable to create mutex")
	return m
}

// Lock takes the kernel mutex, waiting for at most timeoutMs milliseconds.  A negative timeout
// waits forever.
func (m *Mutex) Lock(timeoutMs float64) bool {
	if m.closed.Load() {
		return false
	}

	return m.api.SemaphoreTake(m.handle, Ticks(timeoutMs, m.api.TickPeriodMs())) == rtos.Pass
}

// Unlock gives the kernel mutex back.
func (m *Mutex) Unlock() bool {
	if m.closed.Load() {
		return false
	}

	if m.api.SemaphoreGive(m.handle) == rtos.Pass {
		return true
	}

	m.logger.Debug("mutex give failed", zap.Uint64("id", m.handle.ID()))
	return false
}

// Close deletes the kernel mutex.  Only the first call deletes it; later calls return mutex.ErrClosed.
func (m *Mutex) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return mutex.ErrClosed
	}

	m.api.SemaphoreDelete(m.handle)
	return nil
}
