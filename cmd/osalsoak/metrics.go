// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/osal/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// newMetricsHandler routes /metrics to the registry's Prometheus exposition
func newMetricsHandler(r xmetrics.Registry) http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(r, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return router
}

// registerMetricsServer serves metrics for the lifetime of the application when an address is configured.
func registerMetricsServer(lc fx.Lifecycle, c SoakConfig, r xmetrics.Registry, logger *zap.Logger) {
	if len(c.Metrics) == 0 {
		return
	}

	server := &http.Server{
		Addr:    c.Metrics,
		Handler: newMetricsHandler(r),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			l, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}

			logger.Info("serving metrics", zap.String("address", l.Addr().String()))
			go func() {
				if err := server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: server.Shutdown,
	})
}
