package handler

import (
	"strings"

	"kyntel/internal/graph"
	dErrors "kyntel/pkg/domain-errors"
)

// maxNodes bounds a single computation request.
const maxNodes = 5000

// ComputeRequest is the HTTP request body for POST /v1/graph/metrics.
type ComputeRequest struct {
	Nodes     []graph.Node `json:"nodes"`
	Edges     []graph.Edge `json:"edges"`
	RiskScore *float64     `json:"riskScore,omitempty"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ComputeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Nodes == nil {
		return dErrors.New(dErrors.CodeValidation, "nodes is required")
	}
	if len(r.Nodes) > maxNodes {
		return dErrors.Newf(dErrors.CodeValidation, "nodes must contain at most %d entries", maxNodes)
	}

	seen := make(map[string]bool, len(r.Nodes))
	for i := range r.Nodes {
		n := &r.Nodes[i]
		n.ID = strings.TrimSpace(n.ID)
		if n.ID == "" {
			return dErrors.Newf(dErrors.CodeValidation, "nodes[%d].id is required", i)
		}
		if seen[n.ID] {
			return dErrors.Newf(dErrors.CodeValidation, "nodes[%d].id %q is duplicated", i, n.ID)
		}
		seen[n.ID] = true
	}

	for i := range r.Edges {
		e := &r.Edges[i]
		if !seen[e.Source] {
			return dErrors.Newf(dErrors.CodeValidation, "edges[%d].source %q does not name a node", i, e.Source)
		}
		if !seen[e.Target] {
			return dErrors.Newf(dErrors.CodeValidation, "edges[%d].target %q does not name a node", i, e.Target)
		}
		if e.Source == e.Target {
			return dErrors.Newf(dErrors.CodeValidation, "edges[%d] is a self-loop", i)
		}
		if _, ok := graph.ParseEdgeKind(string(e.Kind)); !ok {
			return dErrors.Newf(dErrors.CodeValidation, "edges[%d].kind %q is not a known relationship kind", i, e.Kind)
		}
		if e.Strength < 0 || e.Strength > 1 {
			return dErrors.Newf(dErrors.CodeValidation, "edges[%d].strength must be within [0,1]", i)
		}
	}

	return nil
}
