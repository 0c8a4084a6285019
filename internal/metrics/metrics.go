// Package metrics collects and exposes Prometheus counters for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts the events worth graphing: searches run, records
// created, authentication failures. Handlers call it directly; it is safe
// for concurrent use.
type Collector struct {
	registry       *prometheus.Registry
	searches       *prometheus.CounterVec
	recordsCreated *prometheus.CounterVec
	authFailures   prometheus.Counter
}

// NewCollector creates a Collector backed by its own registry so tests can
// build isolated instances.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trailspot_searches_total",
			Help: "Number of search requests served, by record kind.",
		}, []string{"kind"}),
		recordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trailspot_records_created_total",
			Help: "Number of records created, by record kind.",
		}, []string{"kind"}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailspot_auth_failures_total",
			Help: "Number of failed authentication attempts.",
		}),
	}
	reg.MustRegister(c.searches, c.recordsCreated, c.authFailures)
	return c
}

func (c *Collector) RecordSearch(kind string)  { c.searches.WithLabelValues(kind).Inc() }
func (c *Collector) RecordCreated(kind string) { c.recordsCreated.WithLabelValues(kind).Inc() }
func (c *Collector) RecordAuthFailure()        { c.authFailures.Inc() }

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
