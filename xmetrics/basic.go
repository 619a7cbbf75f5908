// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

// Adder represents a metric to which deltas can be added.  go-kit counters and gauges implement it.
type Adder interface {
	Add(float64)
}

// Observer receives observations.  Histograms implement this interface.
type Observer interface {
	Observe(float64)
}
