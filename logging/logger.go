// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger returns the global NOP logger used when nothing is configured.
func DefaultLogger() *zap.Logger {
	return sallust.Default()
}

// New creates a zap logger from a set of options.  The options object can be nil, in which case
// a logger that writes errors to os.Stdout is returned.  Caller information is always included.
func New(o *Options, opts ...zap.Option) *zap.Logger {
	core := zapcore.NewCore(o.encoder(), o.output(), o.level())
	return zap.New(core, append([]zap.Option{zap.AddCaller()}, opts...)...)
}

// WithLogger adds the given logger to the context so that it can be retrieved with FromContext
func WithLogger(parent context.Context, logger *zap.Logger) context.Context {
	return sallust.With(parent, logger)
}

// FromContext retrieves the logger associated with the context.  If no logger is present,
// DefaultLogger is returned instead.
func FromContext(ctx context.Context) *zap.Logger {
	return sallust.Get(ctx)
}
