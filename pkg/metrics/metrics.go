// Package metrics exposes Prometheus instrumentation for a matching core
// harness. It is deliberately thin: the matching core itself stays silent
// per its own non-goals, so every counter here is recorded by the harness
// that drives a core (cmd/matchcore-demo), not by the core.
package metrics

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Matching collects the metrics a matching-core harness cares about: how
// many orders were registered, how many conditional orders triggered, how
// many fills happened by liquidity side, and how long a sweep took.
type Matching struct {
	namespace string
	registry  *prometheus.Registry
	logger    log.Logger

	ordersRegistered prometheus.Counter
	triggersFired    prometheus.Counter
	fillsByLiquidity *prometheus.CounterVec
	iterateLatency   prometheus.Histogram

	memoryUsage prometheus.Gauge
	goroutines  prometheus.Gauge
}

// New builds a Matching metrics set under namespace, using logger for
// startup and server-error logging.
func New(namespace string, logger log.Logger) *Matching {
	registry := prometheus.NewRegistry()

	m := &Matching{
		namespace: namespace,
		registry:  registry,
		logger:    logger,

		ordersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_registered_total",
			Help:      "Total working orders registered with the matching core",
		}),
		triggersFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triggers_fired_total",
			Help:      "Total conditional-order activations",
		}),
		fillsByLiquidity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fills_total",
			Help:      "Total fills, labeled by liquidity side",
		}, []string{"liquidity_side"}),
		iterateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iterate_latency_nanoseconds",
			Help:      "Wall-clock duration of a single Iterate sweep",
			Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		}),
		memoryUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_usage_bytes",
			Help:      "Current process memory usage in bytes",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines_count",
			Help:      "Current number of goroutines",
		}),
	}

	registry.MustRegister(
		m.ordersRegistered,
		m.triggersFired,
		m.fillsByLiquidity,
		m.iterateLatency,
		m.memoryUsage,
		m.goroutines,
	)

	logger.Info("matching metrics initialized", "namespace", namespace)
	return m
}

// StartServer exposes the registry on /metrics over HTTP.
func (m *Matching) StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("metrics server failed", "error", err)
		}
	}()

	m.logger.Info("metrics endpoint listening", "addr", addr)
	return nil
}

func (m *Matching) RecordOrderRegistered() { m.ordersRegistered.Inc() }

func (m *Matching) RecordTrigger() { m.triggersFired.Inc() }

func (m *Matching) RecordFill(side string) { m.fillsByLiquidity.WithLabelValues(side).Inc() }

func (m *Matching) RecordIterateLatency(d time.Duration) {
	m.iterateLatency.Observe(float64(d.Nanoseconds()))
}

// CollectSystemMetrics samples process-level stats every interval until ctx
// is canceled. Intended to be run in its own goroutine by the harness.
func (m *Matching) CollectSystemMetrics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var memStats runtime.MemStats
			runtime.ReadMemStats(&memStats)
			m.memoryUsage.Set(float64(memStats.Alloc))
			m.goroutines.Set(float64(runtime.NumGoroutine()))
		}
	}
}
