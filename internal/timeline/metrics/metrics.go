package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the timeline module.
type Metrics struct {
	BuildLatency     prometheus.Histogram
	EventCount       prometheus.Histogram
	CategoryFailures *prometheus.CounterVec
}

// New creates a new Metrics instance with all timeline metrics registered.
func New() *Metrics {
	return &Metrics{
		BuildLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyntel_timeline_build_duration_seconds",
			Help:    "Duration of a timeline build including category fetches",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		EventCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyntel_timeline_events",
			Help:    "Event counts of assembled timelines",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		CategoryFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyntel_timeline_category_failures_total",
			Help: "Degraded category fetches by category",
		}, []string{"category"}),
	}
}

// ObserveBuildLatency records the duration of one build.
func (m *Metrics) ObserveBuildLatency(d time.Duration) {
	if m != nil {
		m.BuildLatency.Observe(d.Seconds())
	}
}

// ObserveEventCount records the size of an assembled timeline.
func (m *Metrics) ObserveEventCount(n int) {
	if m != nil {
		m.EventCount.Observe(float64(n))
	}
}

// IncrementCategoryFailure records a degraded category fetch.
func (m *Metrics) IncrementCategoryFailure(category string) {
	if m != nil {
		m.CategoryFailures.WithLabelValues(category).Inc()
	}
}
