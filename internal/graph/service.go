// Package graph computes structural metrics over an entity relationship
// network: degree, density, aggregate risk, and a betweenness-based
// centrality estimate.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat"

	"kyntel/internal/audit"
	"kyntel/internal/graph/metrics"
	"kyntel/pkg/requestcontext"
)

// ComputeInput carries the resolved node and edge lists. RiskScore, when
// non-nil, is the caller's precomputed aggregate; otherwise the mean of node
// risk scores is used.
type ComputeInput struct {
	Nodes     []Node
	Edges     []Edge
	RiskScore *float64
}

// Service computes network metrics. Stateless; every invocation works on its
// own locals.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
}

// New constructs the graph metrics service.
func New(logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher) *Service {
	return &Service{logger: logger, metrics: m, audit: auditor}
}

// Compute annotates the nodes with degree and centrality and derives the
// aggregate metrics. Inputs are assumed validated: every edge endpoint names
// a supplied node and no edge is a self-loop.
//
// Centrality is shortest-path betweenness over an undirected projection of
// the edge list, normalized into [0,1]. It is a ranking signal for visual
// emphasis, not a guarantee about any particular graph-theoretic property of
// the directed multigraph the edges may describe.
func (s *Service) Compute(ctx context.Context, input ComputeInput) (*Network, error) {
	start := time.Now()

	nodes := make([]Node, len(input.Nodes))
	copy(nodes, input.Nodes)
	edges := make([]Edge, len(input.Edges))
	copy(edges, input.Edges)

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	// Degree counts every edge touching the node, parallel edges included.
	for i := range nodes {
		nodes[i].Degree = 0
		nodes[i].Centrality = 0
	}
	for _, e := range edges {
		nodes[index[e.Source]].Degree++
		nodes[index[e.Target]].Degree++
	}

	s.annotateCentrality(nodes, edges, index)

	m := Metrics{
		TotalNodes: len(nodes),
		TotalEdges: len(edges),
	}
	// Density over ordered pairs; a graph needs at least two nodes to have
	// any possible edge.
	if len(nodes) > 1 {
		m.Density = float64(len(edges)) / float64(len(nodes)*(len(nodes)-1))
	}
	m.RiskScore = s.aggregateRisk(input.RiskScore, nodes)

	s.metrics.ObserveComputeLatency(time.Since(start))
	s.metrics.ObserveNetworkSize(len(nodes), len(edges))

	if s.audit != nil {
		s.audit.Publish(ctx, audit.Event{
			Action:    audit.ActionGraphComputed,
			RequestID: requestcontext.RequestID(ctx),
			Detail:    fmt.Sprintf("%d nodes, %d edges", len(nodes), len(edges)),
		})
	}

	return &Network{Nodes: nodes, Edges: edges, Metrics: m}, nil
}

// annotateCentrality fills Node.Centrality from betweenness over the
// undirected simple projection. Parallel edges collapse; with fewer than
// three nodes no path can pass through anything, so centrality stays zero.
func (s *Service) annotateCentrality(nodes []Node, edges []Edge, index map[string]int) {
	n := len(nodes)
	if n < 3 {
		return
	}

	g := simple.NewUndirectedGraph()
	for i := range nodes {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, e := range edges {
		from := simple.Node(int64(index[e.Source]))
		to := simple.Node(int64(index[e.Target]))
		if from == to || g.HasEdgeBetween(int64(from), int64(to)) {
			continue
		}
		g.SetEdge(simple.Edge{F: from, T: to})
	}

	// Betweenness accumulates over ordered source/target pairs, so the
	// normalizer is the full (n-1)(n-2) pair count.
	betweenness := network.Betweenness(g)
	norm := float64(n-1) * float64(n-2)
	for i := range nodes {
		nodes[i].Centrality = betweenness[int64(i)] / norm
	}
}

// aggregateRisk prefers the caller-supplied value and falls back to the mean
// of node risk scores, zero for an empty node list.
func (s *Service) aggregateRisk(supplied *float64, nodes []Node) float64 {
	if supplied != nil {
		return *supplied
	}
	if len(nodes) == 0 {
		return 0
	}
	risks := make([]float64, len(nodes))
	for i, n := range nodes {
		risks[i] = n.RiskScore
	}
	return stat.Mean(risks, nil)
}
