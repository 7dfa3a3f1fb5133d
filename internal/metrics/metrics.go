// Package metrics exposes prometheus counters for key generation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry   *prometheus.Registry
	generated  *prometheus.CounterVec
	failures   *prometheus.CounterVec
	generation prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsakeygen_generated_total",
				Help: "Number of RSA key pairs generated",
			},
			[]string{"bits"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsakeygen_failures_total",
				Help: "Number of failed key generations",
			},
			[]string{"stage"},
		),
		generation: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rsakeygen_generation_seconds",
				Help:    "Time spent generating a key pair",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
	}
	m.registry.MustRegister(m.generated, m.failures, m.generation)
	return m
}

// ObserveSuccess records a generated pair of the given size.
func (m *Metrics) ObserveSuccess(bits int, elapsed time.Duration) {
	m.generated.WithLabelValues(strconv.Itoa(bits)).Inc()
	m.generation.Observe(elapsed.Seconds())
}

// ObserveFailure records a failure at the given stage.
func (m *Metrics) ObserveFailure(stage string) {
	m.failures.WithLabelValues(stage).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
