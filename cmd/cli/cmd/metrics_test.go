package cmd

import (
	"io"
	"net/http"
	"testing"

	"github.com/angelospk/sublight-go/pkg/core/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartMetricsServer_ServesMetrics(t *testing.T) {
	metrics.RemoteCallsTotal.WithLabelValues("FindIMDB", "success").Inc()

	srv, err := startMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	metricsServer = srv
	t.Cleanup(stopMetricsServer)

	resp, err := http.Get("http://" + srv.Addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `sublight_remote_calls_total{operation="FindIMDB",status="success"}`)
}

func TestStopMetricsServer(t *testing.T) {
	srv, err := startMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	metricsServer = srv

	stopMetricsServer()
	assert.Nil(t, metricsServer)

	_, err = http.Get("http://" + srv.Addr + "/metrics")
	assert.Error(t, err, "server should no longer accept connections")

	stopMetricsServer()
}

func TestStartMetricsServer_BadAddress(t *testing.T) {
	_, err := startMetricsServer("256.0.0.1:bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen for metrics")
}
