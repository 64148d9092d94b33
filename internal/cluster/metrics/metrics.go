package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the clustering module.
type Metrics struct {
	AnalyzeLatency     prometheus.Histogram
	ClustersDiscovered prometheus.Counter
	FlagsRaised        prometheus.Counter
}

// New creates a new Metrics instance with all clustering metrics registered.
func New() *Metrics {
	return &Metrics{
		AnalyzeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyntel_cluster_analyze_duration_seconds",
			Help:    "Duration of a full proximity clustering analysis",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ClustersDiscovered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kyntel_cluster_discovered_total",
			Help: "Total clusters materialized across all analyses",
		}),
		FlagsRaised: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kyntel_cluster_flags_total",
			Help: "Total suspicious-pattern flags raised",
		}),
	}
}

// ObserveAnalyzeLatency records the duration of one analysis.
func (m *Metrics) ObserveAnalyzeLatency(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}

// AddClustersDiscovered records materialized clusters.
func (m *Metrics) AddClustersDiscovered(n int) {
	if m != nil {
		m.ClustersDiscovered.Add(float64(n))
	}
}

// AddFlagsRaised records raised suspicious-pattern flags.
func (m *Metrics) AddFlagsRaised(n int) {
	if m != nil {
		m.FlagsRaised.Add(float64(n))
	}
}
