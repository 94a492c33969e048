// Package metrics exposes Prometheus instrumentation for completions and
// simulations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/concord/internal/openai"
)

// Metrics holds all Prometheus metrics for the simulator.
type Metrics struct {
	// Completion metrics
	Completions       *prometheus.CounterVec
	CompletionLatency *prometheus.HistogramVec
	CompletionTokens  *prometheus.CounterVec

	// Simulation metrics
	Simulations        *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	Fallbacks          *prometheus.CounterVec

	// Carbon metrics
	CarbonGrams *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers all metrics with reg. A nil reg uses a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		Completions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concord_completions_total",
				Help: "Total generation calls by kind and outcome",
			},
			[]string{"kind", "mode", "outcome", "error_code"}, // outcome: ok, fallback, cache
		),

		CompletionLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concord_completion_duration_seconds",
				Help:    "Latency of generation calls",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"kind", "model"},
		),

		CompletionTokens: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concord_completion_tokens_total",
				Help: "Tokens consumed by successful generation calls",
			},
			[]string{"model"},
		),

		Simulations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concord_simulations_total",
				Help: "Total simulations run by mode",
			},
			[]string{"mode"},
		),

		SimulationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concord_simulation_duration_seconds",
				Help:    "End-to-end simulation time",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),

		Fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concord_simulation_fallbacks_total",
				Help: "Canned texts substituted into simulation results",
			},
			[]string{"mode"},
		),

		CarbonGrams: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concord_simulation_co2_grams",
				Help:    "Estimated CO2 grams per tracked simulation",
				Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"model"},
		),

		gatherer: reg,
	}
}

// OnCallComplete implements openai.Observer.
func (m *Metrics) OnCallComplete(ev openai.CallEvent) {
	m.Completions.WithLabelValues(ev.Kind, ev.Mode, string(ev.Outcome), ev.ErrorCode).Inc()
	if ev.Outcome == openai.OutcomeCache {
		return
	}
	m.CompletionLatency.WithLabelValues(ev.Kind, ev.Model).Observe(ev.Latency.Seconds())
	if ev.Tokens > 0 {
		m.CompletionTokens.WithLabelValues(ev.Model).Add(float64(ev.Tokens))
	}
}

// Simulation describes one finished simulation.
type Simulation struct {
	Mode        string
	Model       string
	Fallbacks   int
	Seconds     float64
	CarbonGrams float64
	Tracked     bool
}

func (m *Metrics) ObserveSimulation(s Simulation) {
	m.Simulations.WithLabelValues(s.Mode).Inc()
	m.SimulationDuration.WithLabelValues(s.Mode).Observe(s.Seconds)
	if s.Fallbacks > 0 {
		m.Fallbacks.WithLabelValues(s.Mode).Add(float64(s.Fallbacks))
	}
	if s.Tracked {
		m.CarbonGrams.WithLabelValues(s.Model).Observe(s.CarbonGrams)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
