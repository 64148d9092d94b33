package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kyntel/internal/graph"
	"kyntel/pkg/platform/httputil"
	"kyntel/pkg/requestcontext"
)

// Service defines the interface for graph metric operations.
type Service interface {
	Compute(ctx context.Context, input graph.ComputeInput) (*graph.Network, error)
}

// Handler wires the graph endpoint to the graph service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a graph handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts graph endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/graph/metrics", h.HandleCompute)
}

// HandleCompute handles POST /v1/graph/metrics requests.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ComputeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Compute(ctx, graph.ComputeInput{
		Nodes:     req.Nodes,
		Edges:     req.Edges,
		RiskScore: req.RiskScore,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "graph computation failed",
			"request_id", requestID,
			"node_count", len(req.Nodes),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "graph computation completed",
		"request_id", requestID,
		"node_count", len(req.Nodes),
		"edge_count", len(req.Edges),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}
