// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package mutex defines the portable mutex contract shared by every OSAL port.

A mutex is locked with a timeout in milliseconds and reports success as a bool.  A negative
timeout waits forever.  Implementations are locked and unlocked by the same owner; unlocking
from any other owner, or using a mutex after Close, is undefined.

Variants in this package are the polled mutex, which retries a non-blocking acquire on a
clock, and the no-op mutex for single-threaded builds.  The RTOS-backed variant lives in
package freertos.
*/
package mutex
