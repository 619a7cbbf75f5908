// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package freertos

import (
	"math"

	"github.com/ccoveille/go-safecast"
	"github.com/xmidt-org/osal/rtos"
)

// Ticks converts a timeout in milliseconds to kernel ticks.  A negative timeout is rtos.MaxDelay.
// Otherwise the timeout is divided by the tick period and truncated, so a timeout shorter than one
// tick is a single attempt.  A finite timeout never converts to rtos.MaxDelay: counts that do not
// fit are clamped one tick short of it.  NaN converts to zero ticks.
func Ticks(timeoutMs, tickPeriodMs float64) rtos.TickType {
	switch {
	case timeoutMs < 0:
		return rtos.MaxDelay

	case math.IsNaN(timeoutMs) || timeoutMs == 0:
		return 0
	}

	ticks, err := safecast.ToUint32(math.Trunc(timeoutMs / tickPeriodMs))
	if err != nil || rtos.TickType(ticks) == rtos.MaxDelay {
		return rtos.MaxDelay - 1
	}

	return rtos.TickType(ticks)
}
