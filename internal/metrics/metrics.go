// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records acquisition and filter counters on a private
// Prometheus registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Page outcomes used as the "outcome" label of moviegrid_pages_total.
const (
	OutcomeOK             = "ok"
	OutcomeSourceError    = "source_error"
	OutcomeTransportError = "transport_error"
)

// Metrics holds the collectors exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry
	pages    *prometheus.CounterVec
	records  prometheus.Gauge
	filters  prometheus.Counter
	viewRows prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go
// runtime collector, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviegrid_pages_total",
			Help: "Search page requests issued during acquisition, by outcome.",
		}, []string{"outcome"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "moviegrid_records_acquired",
			Help: "Records in the published baseline.",
		}),
		filters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "moviegrid_filter_requests_total",
			Help: "Search actions applied to the baseline.",
		}),
		viewRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "moviegrid_view_rows",
			Help: "Rows in the current view.",
		}),
	}
	m.registry.MustRegister(
		m.pages, m.records, m.filters, m.viewRows,
		collectors.NewGoCollector(),
	)
	return m
}

// PageFetched counts one page request with the given outcome.
func (m *Metrics) PageFetched(outcome string) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(outcome).Inc()
}

// BaselinePublished records the baseline size; the view starts equal to it.
func (m *Metrics) BaselinePublished(n int) {
	if m == nil {
		return
	}
	m.records.Set(float64(n))
	m.viewRows.Set(float64(n))
}

// FilterApplied counts a search action that produced rows view rows.
func (m *Metrics) FilterApplied(rows int) {
	if m == nil {
		return
	}
	m.filters.Inc()
	m.viewRows.Set(float64(rows))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
