// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mutex

import (
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/osal/xmetrics"
)

const (
	HeldGauge            = "mutex_held"
	LockFailureCounter   = "mutex_lock_failures"
	UnlockFailureCounter = "mutex_unlock_failures"
	LockWaitHistogram    = "mutex_lock_wait_seconds"
)

// Metrics is the xmetrics module for instrumented mutexes
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: HeldGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of instrumented mutexes currently held",
		},
		{
			Name: LockFailureCounter,
			Type: xmetrics.CounterType,
			Help: "The number of Lock calls that timed out",
		},
		{
			Name: UnlockFailureCounter,
			Type: xmetrics.CounterType,
			Help: "The number of Unlock calls that failed",
		},
		{
			Name:    LockWaitHistogram,
			Type:    xmetrics.HistogramType,
			Help:    "The time spent in Lock calls, in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	}
}

// ProviderOptions binds the metrics in this package's module to instrument options.
func ProviderOptions(p provider.Provider) []InstrumentOption {
	return []InstrumentOption{
		WithHeld(p.NewGauge(HeldGauge)),
		WithLockFailures(p.NewCounter(LockFailureCounter)),
		WithUnlockFailures(p.NewCounter(UnlockFailureCounter)),
		WithLockWait(p.NewHistogram(LockWaitHistogram, 0)),
	}
}
