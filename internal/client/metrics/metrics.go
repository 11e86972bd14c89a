// Package metrics records client-side counters for registry calls and
// geocoder requests. A nil *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "landgrab"

type Metrics struct {
	registry     *prometheus.Registry
	chainCalls   *prometheus.CounterVec
	confirmation *prometheus.HistogramVec
	geocoder     *prometheus.CounterVec
}

// New registers the client metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		chainCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chain_calls_total",
			Help:      "Registry reads and writes by contract method and outcome.",
		}, []string{"method", "outcome"}),
		confirmation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tx_confirmation_seconds",
			Help:      "Time from submission to a mined receipt.",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"method"}),
		geocoder: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocoder_requests_total",
			Help:      "Geocoder requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
	}
	m.registry.MustRegister(m.chainCalls, m.confirmation, m.geocoder)
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveChainCall counts one registry call.
func (m *Metrics) ObserveChainCall(method string, err error) {
	if m == nil {
		return
	}
	m.chainCalls.WithLabelValues(method, outcome(err)).Inc()
}

// ObserveConfirmation records how long a write waited to be mined.
func (m *Metrics) ObserveConfirmation(method string, d time.Duration) {
	if m == nil {
		return
	}
	m.confirmation.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveGeocoder counts one geocoder request.
func (m *Metrics) ObserveGeocoder(endpoint string, err error) {
	if m == nil {
		return
	}
	m.geocoder.WithLabelValues(endpoint, outcome(err)).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
