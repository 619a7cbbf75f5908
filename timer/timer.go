// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package timer provides a millisecond countdown timer driven by an OSAL port's clock.
package timer

import (
	"sync"

	"github.com/xmidt-org/osal/osal"
)

// Timer counts down a period from the moment it is started.  It does not fire on its own;
// callers poll IsExpired or block with Wait.  A Timer is safe for concurrent use.
type Timer struct {
	port osal.Interface

	lock     sync.Mutex
	periodMs float64
	startMs  float64
	running  bool
}

// New creates a stopped timer with the given period in milliseconds.  Negative periods are treated as zero.
func New(port osal.Interface, periodMs float64) *Timer {
	t := &Timer{port: port}
	t.SetPeriod(periodMs)
	return t
}

// Start begins the countdown.  Starting a running timer restarts it.
func (t *Timer) Start() {
	now := t.port.NowMs()

	t.lock.Lock()
	t.startMs = now
	t.running = true
	t.lock.Unlock()
}

// Stop halts the countdown.  A stopped timer is never expired.
func (t *Timer) Stop() {
	t.lock.Lock()
	t.running = false
	t.lock.Unlock()
}

// IsRunning reports whether the timer has been started and not stopped.  An expired timer is
// still running until stopped or restarted.
func (t *Timer) IsRunning() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.running
}

// Period returns the countdown period in milliseconds
func (t *Timer) Period() float64 {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.periodMs
}

// SetPeriod changes the period.  A running timer keeps its start time, so the new period applies
// to the countdown already in progress.
func (t *Timer) SetPeriod(periodMs float64) {
	if !(periodMs > 0) {
		periodMs = 0
	}

	t.lock.Lock()
	t.periodMs = periodMs
	t.lock.Unlock()
}

// Remaining returns the milliseconds left before expiry.  It is the full period for a stopped
// timer and zero for an expired one.
func (t *Timer) Remaining() float64 {
	now := t.port.NowMs()

	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.running {
		return t.periodMs
	}

	if remaining := t.periodMs - (now - t.startMs); remaining > 0 {
		return remaining
	}

	return 0
}

// IsExpired reports whether a running timer has counted down its whole period.
func (t *Timer) IsExpired() bool {
	now := t.port.NowMs()

	t.lock.Lock()
	defer t.lock.Unlock()
	return t.running && now-t.startMs >= t.periodMs
}

// Wait blocks, using the port's delay, until the timer expires.  Wait returns immediately for
// a stopped or expired timer.  It also returns, unexpired, when a delay does not advance the
// port's clock: the noop port never advances, and a remainder shorter than a kernel tick
// cannot be delayed.
func (t *Timer) Wait() {
	if !t.IsRunning() {
		return
	}

	for !t.IsExpired() {
		remaining := t.Remaining()
		if remaining <= 0 {
			return
		}

		before := t.port.NowMs()
		t.port.DelayMs(remaining)
		if !t.IsRunning() || !(t.port.NowMs() > before) {
			return
		}
	}
}
