// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package rtos describes the native real-time kernel API that OSAL ports are written against,
and supplies a simulated kernel implementing it.

The API mirrors the FreeRTOS semaphore calls: timeouts are expressed in ticks, MaxDelay means
wait forever, and every call reports Pass or Fail.  Kernel runs the same contract on the Go
scheduler so that ports can be exercised off target.
*/
package rtos
