// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package fatal

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Error is the unrecoverable initialization error.  It carries the stack of the failed assertion.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return e.cause.Error()
}

// Unwrap returns the underlying error, which includes the stack trace.
func (e *Error) Unwrap() error {
	return e.cause
}

// Format delegates to the underlying pkg/errors value, so %+v prints the stack.
func (e *Error) Format(s fmt.State, verb rune) {
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}

	fmt.Fprint(s, e.cause.Error())
}

// Handler receives assertion failures.  A Handler should not return normally; if it does,
// execution continues after the failed assertion.
type Handler func(*Error)

// Panic is the default Handler.  It panics with the *Error.
func Panic(e *Error) {
	panic(e)
}

// Exit returns a Handler that logs the failure at fatal level, which terminates the process.
// A nil logger results in a handler using zap.L().
func Exit(logger *zap.Logger) Handler {
	return func(e *Error) {
		l := logger
		if l == nil {
			l = zap.L()
		}

		l.Fatal("assertion failed", zap.Error(e))
	}
}

var (
	handlerLock sync.RWMutex
	handler     Handler = Panic
)

// SetHandler installs h and returns the previous handler.  A nil h restores Panic.
func SetHandler(h Handler) Handler {
	if h == nil {
		h = Panic
	}

	handlerLock.Lock()
	previous := handler
	handler = h
	handlerLock.Unlock()

	return previous
}

func current() Handler {
	handlerLock.RLock()
	defer handlerLock.RUnlock()
	return handler
}

// Assert hands an *Error to the installed Handler when condition is false.
func Assert(condition bool, message string) {
	if !condition {
		current()(&Error{cause: errors.Errorf("assertion failed: %s", message)})
	}
}

// Assertf is like Assert, with a formatted message.  The format is only evaluated on failure.
func Assertf(condition bool, format string, args ...interface{}) {
	if !condition {
		current()(&Error{cause: errors.Errorf("assertion failed: "+format, args...)})
	}
}
