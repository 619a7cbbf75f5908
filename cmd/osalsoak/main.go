// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/xmidt-org/osal/fatal"
	"github.com/xmidt-org/osal/logging"
	"github.com/xmidt-org/osal/mutex"
	"github.com/xmidt-org/osal/osal"
	"github.com/xmidt-org/osal/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	o, err := logging.FromViper(logging.Sub(v))
	if err != nil {
		return nil, err
	}

	return logging.New(o), nil
}

func providePort(v *viper.Viper, logger *zap.Logger) (osal.Interface, error) {
	c, err := osal.FromViper(osal.Sub(v))
	if err != nil {
		return nil, err
	}

	if port := v.GetString("osal.port"); len(port) > 0 {
		c.Port = port
	}

	return osal.New(c, logger)
}

func provideRegistry() (xmetrics.Registry, error) {
	return xmetrics.NewRegistry(nil, mutex.Metrics)
}

// provideMutex creates the contended mutex, instrumented against the registry, and closes it on stop.
func provideMutex(lc fx.Lifecycle, port osal.Interface, r xmetrics.Registry) mutex.Interface {
	m := mutex.Instrument(port.NewMutex(), mutex.ProviderOptions(r)...)
	lc.Append(fx.StopHook(m.Close))
	return m
}

// installFatalHandler routes assertion failures through logger, which exits the process.  It must
// run before the application is constructed, since mutexes are created during construction.
// The returned closure restores the previous handler.
func installFatalHandler(logger *zap.Logger) func() {
	previous := fatal.SetHandler(fatal.Exit(logger))
	return func() {
		fatal.SetHandler(previous)
	}
}

// registerSoak starts the soak when the application starts and shuts the application down when
// the soak completes.
func registerSoak(lc fx.Lifecycle, s fx.Shutdowner, c SoakConfig, port osal.Interface, m mutex.Interface, logger *zap.Logger, out io.Writer) {
	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), logger))
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)

				soakCtx, soakCancel := context.WithTimeout(ctx, c.Duration)
				defer soakCancel()

				r, err := soak(soakCtx, c, port, m)
				fmt.Fprintf(out, "port=%s acquisitions=%d timeouts=%d unlockFailures=%d\n",
					port.Name(), r.Acquisitions, r.Timeouts, r.UnlockFailures)

				code := 0
				if err != nil {
					code = 1
				}

				if err := s.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Error("unable to shut down", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func run(arguments []string, out io.Writer) int {
	fs := newFlagSet()
	v, err := newViper(fs, arguments)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	c, err := newSoakConfig(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, err := newLogger(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	restore := installFatalHandler(logger)
	defer restore()

	app := fx.New(
		fx.Supply(v, c, logger),
		fx.Provide(
			func() io.Writer { return out },
			providePort,
			provideRegistry,
			provideMutex,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Invoke(
			registerMetricsServer,
			registerSoak,
		),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	signal := <-app.Wait()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return signal.ExitCode
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
