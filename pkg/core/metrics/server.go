package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultAddress is used when no metrics address is given.
const DefaultAddress = "localhost:9090"

// NewHTTPServer creates an HTTP server that exposes the Sublight metrics at /metrics.
func NewHTTPServer(address string) *http.Server {
	if address == "" {
		address = DefaultAddress
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:    address,
		Handler: mux,
	}
}
