package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kyntel/internal/timeline"
	"kyntel/pkg/platform/httputil"
	"kyntel/pkg/requestcontext"
)

// Service defines the interface for timeline operations.
type Service interface {
	Build(ctx context.Context, query timeline.Query) (*timeline.Timeline, error)
}

// Handler wires the timeline endpoint to the timeline service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a timeline handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts timeline endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/timeline", h.HandleBuild)
}

// HandleBuild handles GET /v1/timeline requests.
func (h *Handler) HandleBuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	// Parameters are validated before any fetch begins.
	query, err := parseQuery(r)
	if err != nil {
		h.logger.WarnContext(ctx, "timeline query rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Build(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "timeline build failed",
			"request_id", requestID,
			"entity_id", query.EntityID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "timeline built",
		"request_id", requestID,
		"entity_kind", query.EntityKind,
		"entity_id", query.EntityID,
		"event_count", result.Stats.TotalEvents,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}
