package rtos

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/osal/clock/clocktest"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func testNewKernelDefaults(t *testing.T) {
	var (
		assert = assert.New(t)
		k      = NewKernel(nil)
	)

	assert.Equal(1.0, k.TickPeriodMs())
	assert.Equal(time.Millisecond, k.period)
	assert.Zero(k.Live())
}

func testNewKernelTickRate(t *testing.T) {
	testData := []struct {
		rate     float64
		periodMs float64
	}{
		{-5, 1.0},
		{0, 1.0},
		{100, 10.0},
		{1000, 1.0},
		{2000, 0.5},
	}

	for _, record := range testData {
		k := NewKernel(&Options{TickRateHz: record.rate, Logger: zaptest.NewLogger(t)})
		assert.Equal(t, record.periodMs, k.TickPeriodMs(), "rate=%v", record.rate)
	}
}

func testNewKernelMaxMutexes(t *testing.T) {
	testData := []struct {
		maxMutexes int
		expected   int32
	}{
		{-1, 0},
		{0, 0},
		{3, 3},
		{math.MaxInt32, math.MaxInt32},
		{math.MaxInt, math.MaxInt32},
	}

	for _, record := range testData {
		k := NewKernel(&Options{MaxMutexes: record.maxMutexes, Logger: zaptest.NewLogger(t)})
		assert.Equal(t, record.expected, k.maxMutexes, "maxMutexes=%d", record.maxMutexes)
	}
}

func TestNewKernel(t *testing.T) {
	t.Run("Defaults", testNewKernelDefaults)
	t.Run("TickRate", testNewKernelTickRate)
	t.Run("MaxMutexes", testNewKernelMaxMutexes)
}

func TestKernelTickCount(t *testing.T) {
	var (
		assert = assert.New(t)
		start  = time.Unix(1000, 0)
		c      = new(clocktest.Mock)
	)

	c.OnNow(start).Once()
	k := NewKernel(&Options{TickRateHz: 100, Clock: c})

	c.OnNow(start.Add(-time.Second)).Once()
	assert.Equal(TickType(0), k.TickCount())

	c.OnNow(start.Add(95 * time.Millisecond)).Once()
	assert.Equal(TickType(9), k.TickCount())

	c.OnNow(start.Add(time.Hour)).Once()
	assert.Equal(TickType(360000), k.TickCount())

	c.AssertExpectations(t)
}

func TestKernelTaskDelay(t *testing.T) {
	c := new(clocktest.Mock)
	c.OnNow(time.Now()).Once()
	k := NewKernel(&Options{TickRateHz: 100, Clock: c})

	k.TaskDelay(0)
	c.OnSleep(30 * time.Millisecond).Once()
	k.TaskDelay(3)

	c.AssertExpectations(t)
}

func TestKernelCreateMutex(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		k       = NewKernel(&Options{MaxMutexes: 2, Logger: zaptest.NewLogger(t)})
	)

	first := k.SemaphoreCreateMutex()
	require.NotNil(first)
	second := k.SemaphoreCreateMutex()
	require.NotNil(second)
	assert.NotEqual(first.ID(), second.ID())
	assert.Equal(2, k.Live())

	assert.Nil(k.SemaphoreCreateMutex())
	assert.Equal(2, k.Live())

	k.SemaphoreDelete(first)
	k.SemaphoreDelete(first)
	assert.Equal(1, k.Live())

	third := k.SemaphoreCreateMutex()
	require.NotNil(third)
	assert.Equal(2, k.Live())

	k.SemaphoreDelete(second)
	k.SemaphoreDelete(third)
	k.SemaphoreDelete(nil)
	assert.Zero(k.Live())
}

func TestKernelTakeGive(t *testing.T) {
	var (
		assert = assert.New(t)
		k      = NewKernel(nil)
		s      = k.SemaphoreCreateMutex()
	)

	defer k.SemaphoreDelete(s)

	assert.Equal(Fail, k.SemaphoreGive(s))
	assert.Equal(Pass, k.SemaphoreTake(s, 0))
	assert.Equal(Fail, k.SemaphoreTake(s, 0))
	assert.Equal(Pass, k.SemaphoreGive(s))
	assert.Equal(Fail, k.SemaphoreGive(s))
	assert.Equal(Pass, k.SemaphoreTake(s, MaxDelay))
	assert.Equal(Pass, k.SemaphoreGive(s))

	assert.Equal(Fail, k.SemaphoreTake(nil, 0))
	assert.Equal(Fail, k.SemaphoreGive(nil))
}

func testKernelTakeTimeout(t *testing.T) {
	var (
		assert      = assert.New(t)
		require     = require.New(t)
		c           = new(clocktest.Mock)
		timer, fire = clocktest.NewFiringTimer()
		result      = make(chan BaseType, 1)
	)

	c.OnNow(time.Now()).Once()
	c.OnNewTimer(500*time.Millisecond, timer).Once()

	k := NewKernel(&Options{Clock: c})
	s := k.SemaphoreCreateMutex()
	require.Equal(Pass, k.SemaphoreTake(s, 0))

	go func() {
		result <- k.SemaphoreTake(s, 500)
	}()

	fire <- time.Now()
	select {
	case r := <-result:
		assert.Equal(Fail, r)
	case <-time.After(time.Second):
		require.FailNow("SemaphoreTake did not time out")
	}

	c.AssertExpectations(t)
}

func testKernelTakeHandoff(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		k       = NewKernel(nil)
		s       = k.SemaphoreCreateMutex()
		result  = make(chan BaseType, 1)
	)

	defer k.SemaphoreDelete(s)
	require.Equal(Pass, k.SemaphoreTake(s, 0))

	go func() {
		result <- k.SemaphoreTake(s, MaxDelay)
	}()

	select {
	case <-result:
		require.FailNow("SemaphoreTake should block while the semaphore is held")
	case <-time.After(50 * time.Millisecond):
		// passing
	}

	require.Equal(Pass, k.SemaphoreGive(s))
	select {
	case r := <-result:
		assert.Equal(Pass, r)
	case <-time.After(time.Second):
		require.FailNow("SemaphoreTake blocked unexpectedly")
	}

	assert.Equal(Pass, k.SemaphoreGive(s))
}

func testKernelTakeDeleted(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		assert  = assert.New(t)
		require = require.New(t)
		k       = NewKernel(nil)
		s       = k.SemaphoreCreateMutex()
		forever = make(chan BaseType, 1)
		timed   = make(chan BaseType, 1)
	)

	require.Equal(Pass, k.SemaphoreTake(s, 0))
	go func() {
		forever <- k.SemaphoreTake(s, MaxDelay)
	}()

	go func() {
		timed <- k.SemaphoreTake(s, 60000)
	}()

	time.Sleep(20 * time.Millisecond)
	k.SemaphoreDelete(s)

	for _, c := range []chan BaseType{forever, timed} {
		select {
		case r := <-c:
			assert.Equal(Fail, r)
		case <-time.After(time.Second):
			require.FailNow("SemaphoreTake was not released by SemaphoreDelete")
		}
	}

	assert.Equal(Fail, k.SemaphoreTake(s, 0))
	assert.Equal(Fail, k.SemaphoreGive(s))
	assert.Zero(k.Live())
}

func TestKernelTake(t *testing.T) {
	t.Run("Timeout", testKernelTakeTimeout)
	t.Run("Handoff", testKernelTakeHandoff)
	t.Run("Deleted", testKernelTakeDeleted)
}
