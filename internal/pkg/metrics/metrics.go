// Package metrics exposes prometheus instrumentation for the order
// lifecycle engine. The collectors are registered on an explicitly
// constructed registry owned by the composition root, not on the package
// default one.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics groups the collectors the engine reports on.
type EngineMetrics struct {
	// Checkouts counts checkout attempts by result
	// (ok, insufficient_stock, error).
	Checkouts *prometheus.CounterVec

	// StockReleases counts reservation releases applied to the ledger.
	StockReleases prometheus.Counter

	// SlotCapacity reports the latest capacity percent per
	// (delivery window, driver) pair, updated by the capacity snapshot job.
	SlotCapacity *prometheus.GaugeVec
}

// NewEngineMetrics creates the engine collectors and registers them on reg.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pharmacy",
			Subsystem: "orders",
			Name:      "checkouts_total",
			Help:      "Total number of checkout attempts by result.",
		}, []string{"result"}),
		StockReleases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pharmacy",
			Subsystem: "inventory",
			Name:      "stock_releases_total",
			Help:      "Total number of reservation releases credited back to stock.",
		}),
		SlotCapacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pharmacy",
			Subsystem: "delivery",
			Name:      "slot_capacity_percent",
			Help:      "Capacity percent per delivery window and driver.",
		}, []string{"window", "driver"}),
	}

	reg.MustRegister(m.Checkouts, m.StockReleases, m.SlotCapacity)
	return m
}

// Handler returns an HTTP handler serving the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
