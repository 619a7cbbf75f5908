// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rtos

import (
	"math"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/xmidt-org/osal/clock"
	"github.com/xmidt-org/sallust"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	// DefaultTickRateHz is the tick rate used when Options does not supply one (configTICK_RATE_HZ).
	DefaultTickRateHz = 1000.0

	// MaxTickRateHz bounds the tick rate so that a tick is never shorter than a nanosecond.
	MaxTickRateHz = float64(time.Second)
)

// Options configures a simulated Kernel.
type Options struct {
	// TickRateHz is the number of ticks per second.  Nonpositive values select DefaultTickRateHz.
	TickRateHz float64 `json:"tickRateHz"`

	// MaxMutexes limits the number of live mutex handles, simulating a fixed kernel heap.
	// Zero or negative means unlimited.
	MaxMutexes int `json:"maxMutexes"`

	// Clock is the time source.  If unset, clock.System() is used.
	Clock clock.Interface `json:"-"`

	// Logger receives kernel diagnostics.  If unset, sallust.Default() is used.
	Logger *zap.Logger `json:"-"`
}

func (o *Options) tickRateHz() float64 {
	if o != nil && o.TickRateHz > 0 {
		if o.TickRateHz > MaxTickRateHz {
			return MaxTickRateHz
		}

		return o.TickRateHz
	}

	return DefaultTickRateHz
}

func (o *Options) maxMutexes() int32 {
	if o != nil && o.MaxMutexes > 0 {
		n, err := safecast.ToInt32(o.MaxMutexes)
		if err != nil {
			return math.MaxInt32
		}

		return n
	}

	return 0
}

func (o *Options) clock() clock.Interface {
	if o != nil && o.Clock != nil {
		return o.Clock
	}

	return clock.System()
}

func (o *Options) logger() *zap.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return sallust.Default()
}

// Kernel is a simulated real-time kernel.  Its mutexes are binary semaphores built on channels,
// and its tick count is derived from the configured clock.  A Kernel is safe for concurrent use.
type Kernel struct {
	clock  clock.Interface
	logger *zap.Logger

	periodMs float64
	period   time.Duration
	start    time.Time

	maxMutexes int32
	live       atomic.Int32
	nextID     atomic.Uint64
}

var _ API = (*Kernel)(nil)

// NewKernel starts a simulated kernel.  The options may be nil, in which case all defaults apply.
func NewKernel(o *Options) *Kernel {
	var (
		c        = o.clock()
		periodMs = 1000.0 / o.tickRateHz()
		period   = clock.FromMilliseconds(periodMs)
	)

	if period < 1 {
		period = 1
	}

	k := &Kernel{
		clock:      c,
		logger:     o.logger(),
		periodMs:   periodMs,
		period:     period,
		start:      c.Now(),
		maxMutexes: o.maxMutexes(),
	}

	k.logger.Debug("kernel started", zap.Float64("tickPeriodMs", periodMs), zap.Int32("maxMutexes", k.maxMutexes))
	return k
}

// TickPeriodMs returns the length of a tick in milliseconds.
func (k *Kernel) TickPeriodMs() float64 {
	return k.periodMs
}

// TickCount returns the ticks elapsed since NewKernel.  Like a hardware tick counter, it wraps.
func (k *Kernel) TickCount() TickType {
	elapsed := k.clock.Now().Sub(k.start)
	if elapsed < 0 {
		return 0
	}

	return TickType(uint64(elapsed / k.period))
}

func (k *Kernel) duration(ticks TickType) time.Duration {
	if time.Duration(ticks) > time.Duration(math.MaxInt64)/k.period {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(ticks) * k.period
}

// TaskDelay sleeps for the given number of ticks.  A zero delay returns immediately.
func (k *Kernel) TaskDelay(ticks TickType) {
	if ticks > 0 {
		k.clock.Sleep(k.duration(ticks))
	}
}

// Live returns the number of mutex handles that have been created and not yet deleted.
func (k *Kernel) Live() int {
	return int(k.live.Load())
}

// SemaphoreCreateMutex allocates a mutex, or returns nil if MaxMutexes handles are already live.
func (k *Kernel) SemaphoreCreateMutex() *Semaphore {
	if n := k.live.Inc(); k.maxMutexes > 0 && n > k.maxMutexes {
		k.live.Dec()
		k.logger.Error("mutex allocation failed", zap.Int32("maxMutexes", k.maxMutexes))
		return nil
	}

	s := newSemaphore(k.nextID.Inc())
	k.logger.Debug("mutex created", zap.Uint64("id", s.id))
	return s
}

// SemaphoreTake acquires s, waiting up to ticks.  A deleted or nil handle fails.
func (k *Kernel) SemaphoreTake(s *Semaphore, ticks TickType) BaseType {
	if s == nil || s.deleted.Load() {
		return Fail
	}

	if s.tryTake() {
		return Pass
	}

	switch ticks {
	case 0:
		return Fail

	case MaxDelay:
		select {
		case s.c <- struct{}{}:
			return Pass
		case <-s.gone:
			return Fail
		}
	}

	t := k.clock.NewTimer(k.duration(ticks))
	defer t.Stop()

	select {
	case s.c <- struct{}{}:
		return Pass
	case <-t.C():
		return Fail
	case <-s.gone:
		return Fail
	}
}

// SemaphoreGive releases s.  Giving a semaphore that is not taken fails.
func (k *Kernel) SemaphoreGive(s *Semaphore) BaseType {
	if s == nil || s.deleted.Load() {
		return Fail
	}

	if s.give() {
		return Pass
	}

	return Fail
}

// SemaphoreDelete frees s.  Goroutines blocked in SemaphoreTake on s return Fail.
// Deleting the same handle twice has no further effect.
func (k *Kernel) SemaphoreDelete(s *Semaphore) {
	if s == nil {
		return
	}

	if s.markDeleted() {
		k.live.Dec()
		k.logger.Debug("mutex deleted", zap.Uint64("id", s.id))
	}
}
