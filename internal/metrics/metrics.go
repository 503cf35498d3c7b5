// Package metrics exposes prometheus counters for the matching and alerting
// paths, served at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	NearbyQueries     prometheus.Counter
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	AlertsBroadcast   prometheus.Counter
	AlertsDelivered   prometheus.Counter
	ActiveSubscribers prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		NearbyQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_nearby_queries_total",
			Help: "Nearby-donor queries served.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_cache_hits_total",
			Help: "Matching cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_cache_misses_total",
			Help: "Matching cache misses.",
		}),
		AlertsBroadcast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_alerts_broadcast_total",
			Help: "Emergency alerts broadcast.",
		}),
		AlertsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_alerts_delivered_total",
			Help: "Emergency alert deliveries to subscribers.",
		}),
		ActiveSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bloodlink_active_subscribers",
			Help: "Currently connected alert-stream subscribers.",
		}),
	}

	m.registry.MustRegister(
		m.NearbyQueries, m.CacheHits, m.CacheMisses,
		m.AlertsBroadcast, m.AlertsDelivered, m.ActiveSubscribers,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
