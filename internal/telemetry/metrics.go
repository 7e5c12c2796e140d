package telemetry

// Metric naming convention: decisionengine_<subsystem>_<name>_<unit>
//
// All metrics are registered on a dedicated prometheus.Registry, not the
// default global one, so embedding this package never collides with another
// instrumented library in the same process.

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus descriptors the CLI driver increments after
// the kernel, gate, and replay verifier return. Nothing in those packages
// holds a reference to a Metrics value.
type Metrics struct {
	registry *prometheus.Registry

	RunsEvaluatedTotal *prometheus.CounterVec // labels: algorithm
	RunErrorsTotal     *prometheus.CounterVec // labels: kind

	GateDecisionsTotal *prometheus.CounterVec // labels: allowed
	GateDenialsTotal   *prometheus.CounterVec // labels: reason

	ReplayClassificationsTotal *prometheus.CounterVec // labels: classification

	EvaluationDuration prometheus.Histogram
}

// NewMetrics creates and registers every descriptor on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		RunsEvaluatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decisionengine",
			Subsystem: "kernel",
			Name:      "runs_evaluated_total",
			Help:      "Total kernel evaluations completed, by algorithm.",
		}, []string{"algorithm"}),

		RunErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decisionengine",
			Subsystem: "kernel",
			Name:      "run_errors_total",
			Help:      "Total kernel evaluation errors, by error kind.",
		}, []string{"kind"}),

		GateDecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decisionengine",
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Total gate evaluations, by allowed/denied.",
		}, []string{"allowed"}),

		GateDenialsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decisionengine",
			Subsystem: "gate",
			Name:      "denials_total",
			Help:      "Total gate denials, by reason.",
		}, []string{"reason"}),

		ReplayClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decisionengine",
			Subsystem: "replay",
			Name:      "classifications_total",
			Help:      "Total replay verifications, by classification.",
		}, []string{"classification"}),

		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "decisionengine",
			Subsystem: "kernel",
			Name:      "evaluation_duration_seconds",
			Help:      "Wall-clock duration of a single kernel.Evaluate call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.RunsEvaluatedTotal,
		m.RunErrorsTotal,
		m.GateDecisionsTotal,
		m.GateDenialsTotal,
		m.ReplayClassificationsTotal,
		m.EvaluationDuration,
		prometheus.NewGoCollector(),
	)

	return m
}

// ServeMetrics starts the Prometheus HTTP endpoint on addr and blocks until
// ctx is cancelled or the server fails to start.
func (m *Metrics) ServeMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	}))

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server on %s: %w", addr, err)
	}
	return nil
}
