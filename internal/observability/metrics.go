package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "marine_zones"

// Metrics holds the Prometheus counters, histograms, and gauges for the zone pipeline.
type Metrics struct {
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram
	LinesRead     prometheus.Counter
	LinesSkipped  *prometheus.CounterVec // labels: reason={blank,comment,short,non_marine}
	ZonesEmitted  prometheus.Counter

	ZonesLoaded *prometheus.CounterVec // labels: sink={csv,kafka}
	LoadErrors  *prometheus.CounterVec // labels: sink={csv,kafka}

	LastSuccess     prometheus.Gauge
	PipelineRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.LinesRead,
		m.LinesSkipped,
		m.ZonesEmitted,
		m.ZonesLoaded,
		m.LoadErrors,
		m.LastSuccess,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Zone file downloads by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Zone file download duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Total zone file lines handed to the parser.",
		}),
		LinesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_skipped_total",
			Help:      "Zone file lines that produced no zone, by reason.",
		}, []string{"reason"}),
		ZonesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zones_emitted_total",
			Help:      "Total marine zones extracted by the parser.",
		}),
		ZonesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zones_loaded_total",
			Help:      "Marine zones written, by sink.",
		}, []string{"sink"}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Failed sink writes, by sink.",
		}, []string{"sink"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that loaded zones into every sink.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while a run is in progress, 0 otherwise.",
		}),
	}
}
