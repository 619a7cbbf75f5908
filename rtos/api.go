// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rtos

import "math"

// TickType is the kernel's native time unit.
type TickType uint32

// BaseType is the result code of a kernel call.
type BaseType int32

const (
	// Fail is pdFAIL
	Fail BaseType = 0

	// Pass is pdPASS
	Pass BaseType = 1

	// MaxDelay is portMAX_DELAY: a take with this timeout blocks until the semaphore is available.
	MaxDelay TickType = math.MaxUint32
)

// API is the subset of the kernel used by OSAL ports.
type API interface {
	// TickPeriodMs is the length of one tick in milliseconds (portTICK_PERIOD_MS).
	TickPeriodMs() float64

	// TickCount returns the number of ticks since the kernel started.  The count wraps.
	TickCount() TickType

	// TaskDelay blocks the caller for the given number of ticks.
	TaskDelay(TickType)

	// SemaphoreCreateMutex allocates a priority-inheriting mutex.  It returns nil when the
	// kernel cannot allocate one.
	SemaphoreCreateMutex() *Semaphore

	// SemaphoreTake waits up to the given ticks for the semaphore.
	SemaphoreTake(*Semaphore, TickType) BaseType

	// SemaphoreGive releases the semaphore.  It returns Fail if the semaphore was not taken.
	SemaphoreGive(*Semaphore) BaseType

	// SemaphoreDelete frees the semaphore.  Any use of the handle afterwards is undefined.
	SemaphoreDelete(*Semaphore)
}
