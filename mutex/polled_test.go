package mutex

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/osal/clock"
)

// manualClock advances only when slept on
type manualClock struct {
	lock   sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func (mc *manualClock) Now() time.Time {
	mc.lock.Lock()
	defer mc.lock.Unlock()
	return mc.now
}

func (mc *manualClock) Sleep(d time.Duration) {
	mc.lock.Lock()
	defer mc.lock.Unlock()
	mc.sleeps = append(mc.sleeps, d)
	mc.now = mc.now.Add(d)
}

func (mc *manualClock) NewTimer(time.Duration) clock.Timer {
	panic("not used by polled mutexes")
}

func (mc *manualClock) elapsed(since time.Time) time.Duration {
	return mc.Now().Sub(since)
}

func testPolledUncontended(t *testing.T) {
	var (
		assert = assert.New(t)
		mc     = &manualClock{now: time.Unix(0, 0)}
		m      = NewPolled(PollClock(mc))
	)

	assert.False(m.Unlock())
	for _, timeout := range []float64{Forever, 0, 500} {
		assert.True(m.Lock(timeout))
		assert.True(m.Unlock())
	}

	assert.Empty(mc.sleeps)
}

func testPolledTimeout(t *testing.T) {
	testData := []struct {
		timeoutMs float64
		interval  time.Duration
		elapsed   time.Duration
		attempts  int
	}{
		{0, time.Millisecond, 0, 0},
		{math.NaN(), time.Millisecond, 0, 0},
		{10, time.Millisecond, 10 * time.Millisecond, 10},
		{10, 4 * time.Millisecond, 10 * time.Millisecond, 3},
		{2.5, time.Millisecond, 2500 * time.Microsecond, 3},
	}

	for _, record := range testData {
		var (
			assert = assert.New(t)
			mc     = &manualClock{now: time.Unix(0, 0)}
			m      = NewPolled(PollClock(mc), PollInterval(record.interval))
			start  = mc.Now()
		)

		assert.True(m.Lock(Forever))
		assert.False(m.Lock(record.timeoutMs), "timeout=%v", record.timeoutMs)
		assert.Equal(record.elapsed, mc.elapsed(start), "timeout=%v", record.timeoutMs)
		assert.Len(mc.sleeps, record.attempts, "timeout=%v", record.timeoutMs)
		assert.True(m.Unlock())
	}
}

func testPolledHandoff(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		m       = NewPolled(PollInterval(time.Millisecond))
		result  = make(chan bool, 1)
	)

	require.True(m.Lock(Forever))
	go func() {
		result <- m.Lock(Forever)
	}()

	select {
	case <-result:
		require.FailNow("Lock should block while the mutex is held")
	case <-time.After(20 * time.Millisecond):
		// passing
	}

	require.True(m.Unlock())
	select {
	case acquired := <-result:
		assert.True(acquired)
	case <-time.After(time.Second):
		require.FailNow("Lock blocked unexpectedly")
	}

	assert.True(m.Unlock())
	assert.NoError(m.Close())
}

func testPolledBackOff(t *testing.T) {
	var (
		assert = assert.New(t)
		mc     = &manualClock{now: time.Unix(0, 0)}
		m      = NewPolled(
			PollClock(mc),
			PollBackOff(func() backoff.BackOff {
				return backoff.WithMaxRetries(backoff.NewConstantBackOff(3*time.Millisecond), 2)
			}),
		)
	)

	assert.True(m.Lock(0))
	assert.False(m.Lock(10))
	assert.Equal(
		[]time.Duration{3 * time.Millisecond, 3 * time.Millisecond, DefaultPollInterval, DefaultPollInterval, DefaultPollInterval, DefaultPollInterval},
		mc.sleeps,
	)
}

func testPolledClose(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = NewPolled(PollClock(nil), PollInterval(0), PollBackOff(nil))
	)

	assert.True(m.Lock(0))
	assert.True(m.Unlock())
	assert.NoError(m.Close())
	assert.Equal(ErrClosed, m.Close())
	assert.False(m.Lock(0))
	assert.False(m.Unlock())
}

func TestPolled(t *testing.T) {
	t.Run("Uncontended", testPolledUncontended)
	t.Run("Timeout", testPolledTimeout)
	t.Run("Handoff", testPolledHandoff)
	t.Run("BackOff", testPolledBackOff)
	t.Run("Close", testPolledClose)
}
