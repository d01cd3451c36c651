// Package metric exposes Prometheus counters for flow activity.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hnrobert/envportal/internal/flow"
	"github.com/hnrobert/envportal/internal/session"
)

const namespace = "envportal"

// Metrics holds the flow metrics and the registry they are registered in.
type Metrics struct {
	registry *prometheus.Registry

	Submissions    *prometheus.CounterVec
	IgnoredSignals *prometheus.CounterVec
	FieldEdits     *prometheus.CounterVec
	Active         *prometheus.GaugeVec
}

// New creates the metrics on a private registry, together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Resolved submissions by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		IgnoredSignals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ignored_signals_total",
				Help:      "Submit signals dropped because the flow was not ready",
			},
			[]string{"flow", "signal"},
		),
		FieldEdits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "field_edits_total",
				Help:      "Field edit events applied",
			},
			[]string{"flow"},
		),
		Active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_instances",
				Help:      "Flow instances currently mounted",
			},
			[]string{"flow"},
		),
	}
	m.registry.MustRegister(
		m.Submissions,
		m.IgnoredSignals,
		m.FieldEdits,
		m.Active,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) FieldEdited(n flow.Name, _ string) {
	m.FieldEdits.WithLabelValues(string(n)).Inc()
}

func (m *Metrics) SignalIgnored(n flow.Name, sig flow.Signal) {
	m.IgnoredSignals.WithLabelValues(string(n), string(sig)).Inc()
}

func (m *Metrics) Resolved(n flow.Name, _ flow.Signal, d flow.Decision) {
	m.Submissions.WithLabelValues(string(n), Outcome(d)).Inc()
}

// Mounted and Discarded track live instances; see SessionHooks.
func (m *Metrics) Mounted(n flow.Name) {
	m.Active.WithLabelValues(string(n)).Inc()
}

func (m *Metrics) Discarded(n flow.Name) {
	m.Active.WithLabelValues(string(n)).Dec()
}

// SessionHooks wires the active-instance gauge into a session store.
func (m *Metrics) SessionHooks() session.Hooks {
	return session.Hooks{Mounted: m.Mounted, Discarded: m.Discarded}
}

// Outcome labels a decision.
func Outcome(d flow.Decision) string {
	if d.IsError {
		return "error"
	}
	return "success"
}
