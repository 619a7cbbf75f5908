// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package freertos adapts the FreeRTOS mutex, a binary semaphore with priority inheritance, to
the portable mutex.Interface.

The adapter adds no behavior of its own.  Each Lock is a single SemaphoreTake with the timeout
converted to ticks, and each Unlock is a single SemaphoreGive.  A FreeRTOS mutex is meant to be
taken and given by the same task.
*/
package freertos
