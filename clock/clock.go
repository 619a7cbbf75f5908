// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"math"
	"time"
)

// Interface is the time source used by kernels, ports, and polled mutexes.  It exposes the subset
// of the time package those components need, so tests can substitute a mock.
type Interface interface {
	Now() time.Time
	Sleep(time.Duration)
	NewTimer(time.Duration) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return newSystemTimer(d)
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

// Milliseconds converts a duration into fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FromMilliseconds converts fractional milliseconds into a duration, truncating below a nanosecond.
// Negative and NaN inputs yield zero.  Values too large for a duration saturate.
func FromMilliseconds(ms float64) time.Duration {
	switch {
	case math.IsNaN(ms) || ms <= 0:
		return 0
	case ms >= float64(math.MaxInt64)/float64(time.Millisecond):
		return time.Duration(math.MaxInt64)
	default:
		return time.Duration(ms * float64(time.Millisecond))
	}
}
