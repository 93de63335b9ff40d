// Package metrics exposes Prometheus instrumentation for placement and
// search runs. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eugenenazirov/shelfplan/internal/placement"
	"github.com/eugenenazirov/shelfplan/internal/search"
)

const namespace = "shelfplan"

var durationBuckets = []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1}

// Recorder owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	placementDuration *prometheus.HistogramVec
	efficiency        *prometheus.GaugeVec
	unplaced          *prometheus.CounterVec
	searchDuration    *prometheus.HistogramVec
	catalogSize       prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		placementDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "placement_duration_seconds",
			Help:      "Time spent in the placement loop by strategy",
			Buckets:   durationBuckets,
		}, []string{"strategy"}),
		efficiency: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "placement_efficiency_percent",
			Help:      "Shelf capacity in use after the latest placement by strategy",
		}, []string{"strategy"}),
		unplaced: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_unplaced_products_total",
			Help:      "Products dropped because no shelf had room",
		}, []string{"strategy"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent in the search loop by method and outcome",
			Buckets:   durationBuckets,
		}, []string{"method", "found"}),
		catalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Number of products in the working catalog",
		}),
	}
}

// ObservePlacement records res, computed from inputCount products.
func (r *Recorder) ObservePlacement(res placement.Result, inputCount int) {
	if r == nil {
		return
	}
	label := res.Strategy.String()
	r.placementDuration.WithLabelValues(label).Observe(res.Elapsed.Seconds())
	r.efficiency.WithLabelValues(label).Set(res.Efficiency)
	if n := res.Unplaced(inputCount); n > 0 {
		r.unplaced.WithLabelValues(label).Add(float64(n))
	}
}

// ObserveSearch records the search loop time of out.
func (r *Recorder) ObserveSearch(out search.Outcome) {
	if r == nil {
		return
	}
	r.searchDuration.
		WithLabelValues(out.Method.String(), strconv.FormatBool(out.Result.Found)).
		Observe(out.Result.Elapsed.Seconds())
}

// SetCatalogSize records the size of the working catalog.
func (r *Recorder) SetCatalogSize(n int) {
	if r == nil {
		return
	}
	r.catalogSize.Set(float64(n))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
