package mutex

import (
	"testing"
	"time"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/osal/xmetrics"
)

type observations []float64

func (o *observations) Observe(v float64) {
	*o = append(*o, v)
}

func TestInstrumentOptions(t *testing.T) {
	var (
		assert = assert.New(t)
		i      = new(instrumented)

		counter   = generic.NewCounter("test")
		gauge     = generic.NewGauge("test")
		histogram = generic.NewHistogram("test", 10)
	)

	WithHeld(nil)(i)
	assert.NotNil(i.held)
	WithHeld(gauge)(i)
	assert.Equal(gauge, i.held)

	WithLockFailures(nil)(i)
	assert.NotNil(i.lockFailures)
	WithLockFailures(counter)(i)
	assert.Equal(counter, i.lockFailures)

	WithUnlockFailures(nil)(i)
	assert.NotNil(i.unlockFailures)
	WithUnlockFailures(counter)(i)
	assert.Equal(counter, i.unlockFailures)

	WithLockWait(nil)(i)
	assert.NotNil(i.lockWait)
	WithLockWait(histogram)(i)
	assert.Equal(histogram, i.lockWait)

	WithClock(nil)(i)
	assert.NotNil(i.clock)
}

func testInstrumentNilMutex(t *testing.T) {
	assert.Panics(t, func() {
		Instrument(nil)
	})
}

func testInstrumentLockUnlock(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		mc             = &manualClock{now: time.Unix(0, 0)}
		held           = generic.NewGauge("held")
		lockFailures   = generic.NewCounter("lockFailures")
		unlockFailures = generic.NewCounter("unlockFailures")
		lockWait       = new(observations)

		m = Instrument(
			NewPolled(PollClock(mc)),
			WithClock(mc),
			WithHeld(held),
			WithLockFailures(lockFailures),
			WithUnlockFailures(unlockFailures),
			WithLockWait(lockWait),
		)
	)

	require.True(m.Lock(Forever))
	assert.Equal(1.0, held.Value())
	assert.Zero(lockFailures.Value())

	assert.False(m.Lock(5))
	assert.Equal(1.0, held.Value())
	assert.Equal(1.0, lockFailures.Value())
	assert.Equal(observations{0.0, 0.005}, *lockWait)

	assert.True(m.Unlock())
	assert.Zero(held.Value())
	assert.Zero(unlockFailures.Value())

	assert.False(m.Unlock())
	assert.Zero(held.Value())
	assert.Equal(1.0, unlockFailures.Value())

	assert.NoError(m.Close())
	assert.Equal(ErrClosed, m.Close())
}

func testInstrumentNotCloser(t *testing.T) {
	m := Instrument(struct{ Interface }{Noop()})
	assert.NoError(t, m.Close())
}

func testInstrumentRegistry(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := xmetrics.NewRegistry(
		&xmetrics.Options{DisableGoCollector: true, DisableProcessCollector: true},
		Metrics,
	)

	require.NoError(err)

	m := Instrument(NewPolled(), ProviderOptions(r)...)
	require.True(m.Lock(0))
	assert.False(m.Lock(0))

	families, err := r.Gather()
	require.NoError(err)

	values := make(map[string]float64)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			switch {
			case metric.GetGauge() != nil:
				values[f.GetName()] = metric.GetGauge().GetValue()
			case metric.GetCounter() != nil:
				values[f.GetName()] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				values[f.GetName()] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	assert.Equal(1.0, values["xmidt_osal_"+HeldGauge])
	assert.Equal(1.0, values["xmidt_osal_"+LockFailureCounter])
	assert.Equal(2.0, values["xmidt_osal_"+LockWaitHistogram])
}

func TestInstrument(t *testing.T) {
	t.Run("NilMutex", testInstrumentNilMutex)
	t.Run("LockUnlock", testInstrumentLockUnlock)
	t.Run("NotCloser", testInstrumentNotCloser)
	t.Run("Registry", testInstrumentRegistry)
}
