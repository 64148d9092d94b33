package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the graph module.
type Metrics struct {
	ComputeLatency prometheus.Histogram
	NetworkNodes   prometheus.Histogram
	NetworkEdges   prometheus.Histogram
}

// New creates a new Metrics instance with all graph module metrics registered.
func New() *Metrics {
	return &Metrics{
		ComputeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyntel_graph_compute_duration_seconds",
			Help:    "Duration of a network metrics computation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		NetworkNodes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyntel_graph_network_nodes",
			Help:    "Node counts of computed networks",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		NetworkEdges: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyntel_graph_network_edges",
			Help:    "Edge counts of computed networks",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// ObserveComputeLatency records the duration of one computation.
func (m *Metrics) ObserveComputeLatency(d time.Duration) {
	if m != nil {
		m.ComputeLatency.Observe(d.Seconds())
	}
}

// ObserveNetworkSize records the dimensions of a computed network.
func (m *Metrics) ObserveNetworkSize(nodes, edges int) {
	if m != nil {
		m.NetworkNodes.Observe(float64(nodes))
		m.NetworkEdges.Observe(float64(edges))
	}
}
