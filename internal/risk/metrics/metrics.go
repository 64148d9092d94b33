package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the risk module.
type Metrics struct {
	AssessLatency prometheus.Histogram
	LevelOutcome  *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
}

// New creates a new Metrics instance with all risk module metrics registered.
func New() *Metrics {
	return &Metrics{
		AssessLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyntel_risk_assess_duration_seconds",
			Help:    "Duration of a full risk assessment including evidence fetches",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		LevelOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyntel_risk_level_total",
			Help: "Total assessments by resulting risk level",
		}, []string{"level"}),
		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyntel_risk_cache_lookups_total",
			Help: "Assessment cache lookups by outcome",
		}, []string{"outcome"}), // outcome: "hit", "miss"
	}
}

// ObserveAssessLatency records the duration of one assessment.
func (m *Metrics) ObserveAssessLatency(d time.Duration) {
	if m != nil {
		m.AssessLatency.Observe(d.Seconds())
	}
}

// IncrementLevel records an assessment outcome.
func (m *Metrics) IncrementLevel(level string) {
	if m != nil {
		m.LevelOutcome.WithLabelValues(level).Inc()
	}
}

// IncrementCache records a cache lookup outcome.
func (m *Metrics) IncrementCache(outcome string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(outcome).Inc()
	}
}
