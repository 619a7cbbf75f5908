// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import "errors"

var errMutualExclusion = errors.New("more than one worker held the mutex")
