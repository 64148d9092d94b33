package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyntel/internal/audit/publisher"
	"kyntel/internal/graph"
	"kyntel/pkg/testutil"
)

func newTestRouter() chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := graph.New(logger, nil, publisher.NewMemory())

	r := chi.NewRouter()
	New(service, logger).Register(r)
	return r
}

func TestHandleCompute(t *testing.T) {
	router := newTestRouter()

	t.Run("computes metrics for a valid network", func(t *testing.T) {
		body := ComputeRequest{
			Nodes: []graph.Node{{ID: "hub"}, {ID: "a"}, {ID: "b"}, {ID: "c"}},
			Edges: []graph.Edge{
				{Source: "hub", Target: "a", Kind: graph.EdgeKindOwnership, Strength: 1},
				{Source: "hub", Target: "b", Kind: graph.EdgeKindDirectorship, Strength: 1},
				{Source: "hub", Target: "c", Kind: graph.EdgeKindAddressSharing, Strength: 1},
			},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/graph/metrics", body)

		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		network := testutil.UnmarshalResponse[graph.Network](t, rr)
		assert.Equal(t, 4, network.Metrics.TotalNodes)
		assert.InDelta(t, 0.25, network.Metrics.Density, 1e-9)
		assert.Equal(t, 3, network.Nodes[0].Degree)
		assert.InDelta(t, 1.0, network.Nodes[0].Centrality, 1e-9)
	})

	t.Run("self-loop is rejected before computation", func(t *testing.T) {
		body := ComputeRequest{
			Nodes: []graph.Node{{ID: "a"}},
			Edges: []graph.Edge{{Source: "a", Target: "a", Kind: graph.EdgeKindOwnership}},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/graph/metrics", body)

		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}
