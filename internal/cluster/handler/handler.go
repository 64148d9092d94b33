package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kyntel/internal/cluster"
	"kyntel/pkg/platform/httputil"
	"kyntel/pkg/requestcontext"
)

// Service defines the interface for clustering operations.
type Service interface {
	Analyze(ctx context.Context, input cluster.AnalyzeInput) (*cluster.Analysis, error)
}

// Handler wires the clustering endpoint to the clustering service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a clustering handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts clustering endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/clusters/analyze", h.HandleAnalyze)
}

// HandleAnalyze handles POST /v1/clusters/analyze requests.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	analysis, err := h.service.Analyze(ctx, cluster.AnalyzeInput{
		AddressPoints: req.AddressPoints,
		Regions:       req.Regions,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "clustering analysis failed",
			"request_id", requestID,
			"address_count", len(req.AddressPoints),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "clustering analysis completed",
		"request_id", requestID,
		"address_count", len(req.AddressPoints),
		"cluster_count", len(analysis.Clusters),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, analysis)
}
