// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mutex

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xmidt-org/osal/clock"
	"go.uber.org/atomic"
)

// DefaultPollInterval is the delay between acquisition attempts of a polled mutex
const DefaultPollInterval = time.Millisecond

// PolledOption configures a polled mutex
type PolledOption func(*polled)

// PollClock sets the clock used for deadlines and sleeping.  A nil clock selects clock.System().
func PollClock(c clock.Interface) PolledOption {
	return func(p *polled) {
		if c != nil {
			p.clock = c
		} else {
			p.clock = clock.System()
		}
	}
}

// PollInterval sets a constant delay between attempts.  Nonpositive values select DefaultPollInterval.
func PollInterval(d time.Duration) PolledOption {
	return func(p *polled) {
		if d <= 0 {
			d = DefaultPollInterval
		}

		p.newBackOff = func() backoff.BackOff {
			return backoff.NewConstantBackOff(d)
		}
	}
}

// PollBackOff sets the policy for delays between attempts.  The factory is invoked once per Lock.
// When the policy returns backoff.Stop, the default interval is used for the remaining attempts.
func PollBackOff(f func() backoff.BackOff) PolledOption {
	return func(p *polled) {
		if f != nil {
			p.newBackOff = f
		}
	}
}

// NewPolled creates a mutex that never blocks inside the lock itself.  Lock tries to acquire,
// then sleeps on the configured clock and tries again until the timeout elapses.  This matches
// ports whose platform offers no timed wait.
func NewPolled(o ...PolledOption) Closeable {
	p := &polled{
		c:     make(chan struct{}, 1),
		clock: clock.System(),
		newBackOff: func() backoff.BackOff {
			return backoff.NewConstantBackOff(DefaultPollInterval)
		},
	}

	for _, f := range o {
		f(p)
	}

	return p
}

type polled struct {
	c          chan struct{}
	clock      clock.Interface
	newBackOff func() backoff.BackOff
	closed     atomic.Bool
}

func (p *polled) tryLock() bool {
	select {
	case p.c <- struct{}{}:
		return true
	default:
		return false
	}
}

func (p *polled) Lock(timeoutMs float64) bool {
	if p.closed.Load() {
		return false
	}

	if p.tryLock() {
		return true
	}

	// zero and NaN are a single attempt
	if timeoutMs == 0 || math.IsNaN(timeoutMs) {
		return false
	}

	var (
		forever  = timeoutMs < 0
		deadline time.Time
		b        = p.newBackOff()
	)

	if !forever {
		deadline = p.clock.Now().Add(clock.FromMilliseconds(timeoutMs))
	}

	b.Reset()
	for {
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			wait = DefaultPollInterval
		}

		if !forever {
			remaining := deadline.Sub(p.clock.Now())
			if remaining <= 0 {
				return false
			}

			if wait > remaining {
				wait = remaining
			}
		}

		p.clock.Sleep(wait)
		if p.closed.Load() {
			return false
		}

		if p.tryLock() {
			return true
		}
	}
}

func (p *polled) Unlock() bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.c:
		return true
	default:
		return false
	}
}

func (p *polled) Close() error {
	if p.closed.CompareAndSwap(false, true) {
		return nil
	}

	return ErrClosed
}
