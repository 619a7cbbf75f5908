// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mutex

import (
	"io"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/osal/clock"
	"github.com/xmidt-org/osal/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a mutex
type InstrumentOption func(*instrumented)

// WithHeld establishes a metric that is incremented on each successful Lock and decremented on
// each successful Unlock.  If nil, held counts are discarded.
func WithHeld(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumented) {
		if a != nil {
			i.held = a
		} else {
			i.held = discard.NewGauge()
		}
	}
}

// WithLockFailures establishes a metric counting Lock calls that timed out.
// If nil, failures are discarded.
func WithLockFailures(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumented) {
		if a != nil {
			i.lockFailures = a
		} else {
			i.lockFailures = discard.NewCounter()
		}
	}
}

// WithUnlockFailures establishes a metric counting Unlock calls that returned false.
// If nil, failures are discarded.
func WithUnlockFailures(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumented) {
		if a != nil {
			i.unlockFailures = a
		} else {
			i.unlockFailures = discard.NewCounter()
		}
	}
}

// WithLockWait establishes a metric observing, in seconds, how long each Lock call blocked.
// If nil, observations are discarded.
func WithLockWait(o xmetrics.Observer) InstrumentOption {
	return func(i *instrumented) {
		if o != nil {
			i.lockWait = o
		} else {
			i.lockWait = discard.NewHistogram()
		}
	}
}

// WithClock sets the clock used to time Lock calls.  A nil clock selects clock.System().
func WithClock(c clock.Interface) InstrumentOption {
	return func(i *instrumented) {
		if c != nil {
			i.clock = c
		} else {
			i.clock = clock.System()
		}
	}
}

// Instrument decorates an existing mutex with a set of options.  Close is passed through to the
// decorated mutex if it implements io.Closer.  A nil mutex panics.
func Instrument(m Interface, o ...InstrumentOption) Closeable {
	if m == nil {
		panic("a mutex is required")
	}

	i := &instrumented{
		Interface:      m,
		clock:          clock.System(),
		held:           discard.NewGauge(),
		lockFailures:   discard.NewCounter(),
		unlockFailures: discard.NewCounter(),
		lockWait:       discard.NewHistogram(),
	}

	for _, f := range o {
		f(i)
	}

	return i
}

type instrumented struct {
	Interface
	clock clock.Interface

	held           xmetrics.Adder
	lockFailures   xmetrics.Adder
	unlockFailures xmetrics.Adder
	lockWait       xmetrics.Observer
}

func (i *instrumented) Lock(timeoutMs float64) bool {
	start := i.clock.Now()
	acquired := i.Interface.Lock(timeoutMs)
	i.lockWait.Observe(float64(i.clock.Now().Sub(start)) / float64(time.Second))

	if acquired {
		i.held.Add(1.0)
	} else {
		i.lockFailures.Add(1.0)
	}

	return acquired
}

func (i *instrumented) Unlock() bool {
	if i.Interface.Unlock() {
		i.held.Add(-1.0)
		return true
	}

	i.unlockFailures.Add(1.0)
	return false
}

func (i *instrumented) Close() error {
	if c, ok := i.Interface.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
