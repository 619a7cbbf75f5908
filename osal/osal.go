// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package osal

import (
	"time"

	"github.com/xmidt-org/osal/clock"
	"github.com/xmidt-org/osal/freertos"
	"github.com/xmidt-org/osal/mutex"
	"github.com/xmidt-org/osal/rtos"
	"go.uber.org/zap"
)

const (
	FreeRTOS = "freertos"
	Linux    = "linux"
	Noop     = "noop"
)

// Interface is an OSAL port
type Interface interface {
	// Name is the port name, one of the constants in this package
	Name() string

	// NowMs returns the milliseconds elapsed since the port started.
	NowMs() float64

	// DelayMs blocks the calling thread of execution for ms milliseconds.  Nonpositive delays
	// return immediately.
	DelayMs(ms float64)

	// NewMutex creates a mutex owned by the caller, who must Close it.
	NewMutex() mutex.Closeable
}

type freeRTOSPort struct {
	api    rtos.API
	logger *zap.Logger
}

// NewFreeRTOS returns the port for a FreeRTOS kernel.  Time is derived from the tick count and
// delays are converted to ticks the same way mutex timeouts are.
func NewFreeRTOS(api rtos.API, logger *zap.Logger) Interface {
	return &freeRTOSPort{
		api:    api,
		logger: logger,
	}
}

func (p *freeRTOSPort) Name() string {
	return FreeRTOS
}

func (p *freeRTOSPort) NowMs() float64 {
	return float64(p.api.TickCount()) * p.api.TickPeriodMs()
}

func (p *freeRTOSPort) DelayMs(ms float64) {
	if ms > 0 {
		p.api.TaskDelay(freertos.Ticks(ms, p.api.TickPeriodMs()))
	}
}

func (p *freeRTOSPort) NewMutex() mutex.Closeable {
	return freertos.NewMutex(p.api, freertos.WithLogger(p.logger))
}

type linuxPort struct {
	clock        clock.Interface
	start        time.Time
	pollInterval time.Duration
}

// NewLinux returns a port for hosted platforms.  Its mutexes are polled at pollInterval on the
// given clock.  A nil clock selects clock.System().
func NewLinux(c clock.Interface, pollInterval time.Duration) Interface {
	if c == nil {
		c = clock.System()
	}

	return &linuxPort{
		clock:        c,
		start:        c.Now(),
		pollInterval: pollInterval,
	}
}

func (p *linuxPort) Name() string {
	return Linux
}

func (p *linuxPort) NowMs() float64 {
	return clock.Milliseconds(p.clock.Now().Sub(p.start))
}

func (p *linuxPort) DelayMs(ms float64) {
	if d := clock.FromMilliseconds(ms); d > 0 {
		p.clock.Sleep(d)
	}
}

func (p *linuxPort) NewMutex() mutex.Closeable {
	return mutex.NewPolled(mutex.PollClock(p.clock), mutex.PollInterval(p.pollInterval))
}

type noopPort struct{}

// NewNoop returns a port for a single thread of execution with no time source.  Time never
// advances, delays return immediately, and mutexes always succeed.
func NewNoop() Interface {
	return noopPort{}
}

func (noopPort) Name() string              { return Noop }
func (noopPort) NowMs() float64            { return 0 }
func (noopPort) DelayMs(float64)           {}
func (noopPort) NewMutex() mutex.Closeable { return mutex.Noop() }
