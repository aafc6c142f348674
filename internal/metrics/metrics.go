package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service's Prometheus metrics on a private
// registry so tests can build independent instances.
type Collector struct {
	registry *prometheus.Registry

	PlanRequests    prometheus.Counter
	PlanErrors      prometheus.Counter
	PlanDuration    prometheus.Histogram
	CorridorMatches prometheus.Histogram
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		PlanRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuelroute_plan_requests_total",
			Help: "Trip planning requests received.",
		}),
		PlanErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuelroute_plan_errors_total",
			Help: "Trip planning requests that failed.",
		}),
		PlanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fuelroute_plan_duration_seconds",
			Help:    "End-to-end trip planning latency.",
			Buckets: prometheus.DefBuckets,
		}),
		CorridorMatches: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fuelroute_corridor_stations",
			Help:    "Stations found inside the route corridor per request.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
