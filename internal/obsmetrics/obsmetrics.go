// Package obsmetrics exposes Prometheus counters and histograms for skill
// execution. Every metric lives on a registry owned by its Metrics value,
// never the global default registry, so multiple engines in one process
// never collide on metric names.
package obsmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agentcore"

// Metrics collects per-skill call counts, durations, token usage, and cost.
// A nil *Metrics is valid and every method on it is a no-op, so callers can
// wire metrics conditionally without branching at every call site.
type Metrics struct {
	registry *prometheus.Registry

	skillCalls    *prometheus.CounterVec
	skillDuration *prometheus.HistogramVec
	skillErrors   *prometheus.CounterVec
	tokensTotal   *prometheus.CounterVec
	costTotal     *prometheus.CounterVec
}

// New builds a Metrics value on a fresh, private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.skillCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "skill",
		Name:      "calls_total",
		Help:      "Total number of skill invocations",
	}, []string{"skill_id", "model", "cached"})

	m.skillDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "skill",
		Name:      "duration_seconds",
		Help:      "Skill invocation duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"skill_id", "model"})

	m.skillErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "skill",
		Name:      "errors_total",
		Help:      "Total number of skill execution errors",
	}, []string{"skill_id", "error_kind"})

	m.tokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tokens",
		Name:      "total",
		Help:      "Total tokens consumed across skill invocations",
	}, []string{"skill_id", "model"})

	m.costTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cost",
		Name:      "usd_total",
		Help:      "Total realized dollar cost across skill invocations",
	}, []string{"skill_id", "model"})

	m.registry.MustRegister(m.skillCalls, m.skillDuration, m.skillErrors, m.tokensTotal, m.costTotal)
	return m
}

// RecordCall records one completed skill invocation: its call count,
// duration, token usage, and cost.
func (m *Metrics) RecordCall(skillID, model string, cached bool, durationSeconds float64, tokens int, cost float64) {
	if m == nil {
		return
	}
	cachedLabel := "false"
	if cached {
		cachedLabel = "true"
	}
	m.skillCalls.WithLabelValues(skillID, model, cachedLabel).Inc()
	m.skillDuration.WithLabelValues(skillID, model).Observe(durationSeconds)
	m.tokensTotal.WithLabelValues(skillID, model).Add(float64(tokens))
	m.costTotal.WithLabelValues(skillID, model).Add(cost)
}

// RecordError records one failed skill invocation, labeled by its error kind.
func (m *Metrics) RecordError(skillID, errorKind string) {
	if m == nil {
		return
	}
	m.skillErrors.WithLabelValues(skillID, errorKind).Inc()
}

// Handler returns an HTTP handler serving this registry's metrics in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the private Prometheus registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
