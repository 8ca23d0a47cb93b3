package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cluelist_host_requests_total",
		Help: "Requests handled by the host, by request type",
	}, []string{"type"})

	ignoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cluelist_host_ignored_total",
		Help: "Messages dropped because their type is unknown",
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cluelist_host_errors_total",
		Help: "Requests answered with an error response, by request type",
	}, []string{"type"})

	handleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cluelist_host_handle_seconds",
		Help:    "Time spent handling one request",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"type"})
)

// metricLabel keeps label cardinality bounded to the known request types.
func metricLabel(requestType string) string {
	switch requestType {
	case TypeInit, TypeFilter, TypeGetWords, TypeStats:
		return requestType
	default:
		return "invalid"
	}
}

// ServeMetrics exposes the default prometheus registry on addr until ctx ends.
func ServeMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Debugf("Serving metrics on %s/metrics", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
