// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package osal bundles the primitives of one platform behind a single port.

A port supplies the current time and thread delays in milliseconds, and creates mutexes.
Application code is written against Interface and receives the port for its platform,
usually built from configuration with New.
*/
package osal
