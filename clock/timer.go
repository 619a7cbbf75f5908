// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Timer bounds a single wait.  A waiter selects on C alongside whatever it is waiting for, then
// calls Stop however the wait ended.
type Timer interface {
	// C delivers one value when the wait's time is up
	C() <-chan time.Time

	// Stop abandons the timer.  It returns true if the timer had not yet fired.
	Stop() bool
}

// systemTimer adapts a time.Timer.  Stop drains an expiry that nobody received, so an abandoned
// wait leaves nothing buffered in C.
type systemTimer struct {
	t *time.Timer
}

func newSystemTimer(d time.Duration) systemTimer {
	if d < 0 {
		d = 0
	}

	return systemTimer{t: time.NewTimer(d)}
}

func (st systemTimer) C() <-chan time.Time {
	return st.t.C
}

func (st systemTimer) Stop() bool {
	if st.t.Stop() {
		return true
	}

	select {
	case <-st.t.C:
	default:
	}

	return false
}
