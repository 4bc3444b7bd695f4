package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/angelospk/sublight-go/pkg/core/metrics"
)

const metricsShutdownTimeout = 5 * time.Second

// metricsServer is the running /metrics endpoint of the current command, if any.
var metricsServer *http.Server

// startMetricsServer serves Prometheus metrics on address until stopped.
// The returned server's Addr is the bound address, so ":0" can be used.
func startMetricsServer(address string) (*http.Server, error) {
	srv := metrics.NewHTTPServer(address)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics on %s: %w", srv.Addr, err)
	}
	srv.Addr = ln.Addr().String()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Metrics server stopped")
		}
	}()
	logger.WithField("address", srv.Addr).Info("Serving Prometheus metrics")
	return srv, nil
}

func stopMetricsServer() {
	if metricsServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("Failed to shut down metrics server")
	}
	metricsServer = nil
}
