// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/xmidt-org/osal/logging"
	"github.com/xmidt-org/osal/mutex"
	"github.com/xmidt-org/osal/osal"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Results tallies a soak run
type Results struct {
	Acquisitions   int64
	Timeouts       int64
	UnlockFailures int64
}

type tally struct {
	acquisitions   atomic.Int64
	timeouts       atomic.Int64
	unlockFailures atomic.Int64
}

func (t *tally) results() Results {
	return Results{
		Acquisitions:   t.acquisitions.Load(),
		Timeouts:       t.timeouts.Load(),
		UnlockFailures: t.unlockFailures.Load(),
	}
}

// soak runs c.Workers goroutines that repeatedly lock m, hold it for c.HoldMs through the port,
// and unlock it, until ctx is done.  Overlapping critical sections are reported as an error.
func soak(ctx context.Context, c SoakConfig, port osal.Interface, m mutex.Interface) (Results, error) {
	var (
		logger = logging.FromContext(ctx)
		t      tally
		inside atomic.Int32
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < c.Workers; i++ {
		worker := i
		g.Go(func() error {
			for gctx.Err() == nil {
				if !m.Lock(c.TimeoutMs) {
					t.timeouts.Inc()
					continue
				}

				if n := inside.Inc(); n != 1 {
					inside.Dec()
					m.Unlock()
					logger.Error("mutual exclusion violated", zap.Int("worker", worker), zap.Int32("inside", n))
					return errMutualExclusion
				}

				t.acquisitions.Inc()
				port.DelayMs(c.HoldMs)
				inside.Dec()

				if !m.Unlock() {
					t.unlockFailures.Inc()
				}
			}

			return nil
		})
	}

	err := g.Wait()
	r := t.results()
	logger.Info(
		"soak complete",
		zap.String("port", port.Name()),
		zap.Int64("acquisitions", r.Acquisitions),
		zap.Int64("timeouts", r.Timeouts),
		zap.Int64("unlockFailures", r.UnlockFailures),
		zap.Error(err),
	)

	return r, err
}
