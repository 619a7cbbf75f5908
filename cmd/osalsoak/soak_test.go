package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/osal/logging"
	"github.com/xmidt-org/osal/mutex"
	"github.com/xmidt-org/osal/osal"
	"github.com/xmidt-org/osal/xmetrics"
	"go.uber.org/zap/zaptest"
)

func testSoakPort(t *testing.T, name string) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	port, err := osal.New(osal.Config{Port: name}, zaptest.NewLogger(t))
	require.NoError(err)

	m := port.NewMutex()
	defer m.Close()

	ctx, cancel := context.WithTimeout(logging.WithLogger(context.Background(), zaptest.NewLogger(t)), 200*time.Millisecond)
	defer cancel()

	r, err := soak(ctx, SoakConfig{Workers: 4, TimeoutMs: 5, HoldMs: 1}, port, m)
	assert.NoError(err)
	assert.Positive(r.Acquisitions)
	assert.Zero(r.UnlockFailures)
}

func TestSoak(t *testing.T) {
	t.Run("FreeRTOS", func(t *testing.T) { testSoakPort(t, osal.FreeRTOS) })
	t.Run("Linux", func(t *testing.T) { testSoakPort(t, osal.Linux) })
}

func TestMetricsHandler(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := xmetrics.NewRegistry(&xmetrics.Options{DisableGoCollector: true, DisableProcessCollector: true}, mutex.Metrics)
	require.NoError(err)

	m := mutex.Instrument(mutex.NewPolled(), mutex.ProviderOptions(r)...)
	require.True(m.Lock(0))

	server := httptest.NewServer(newMetricsHandler(r))
	defer server.Close()

	response, err := http.Get(server.URL + "/metrics")
	require.NoError(err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(err)
	assert.Equal(http.StatusOK, response.StatusCode)
	assert.Contains(string(body), "xmidt_osal_mutex_held 1")
}

func TestRun(t *testing.T) {
	var (
		assert = assert.New(t)
		out    = new(bytes.Buffer)
	)

	code := run([]string{"--port", "freertos", "--workers", "2", "--duration", "100ms", "--timeout-ms", "-1"}, out)
	assert.Equal(0, code)
	assert.Contains(out.String(), "port=freertos")

	assert.Equal(2, run([]string{"--workers", "-3"}, out))
}
