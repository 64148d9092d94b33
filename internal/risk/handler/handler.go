package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"kyntel/internal/risk"
	dErrors "kyntel/pkg/domain-errors"
	"kyntel/pkg/platform/httputil"
	"kyntel/pkg/requestcontext"
)

// Service defines the interface for risk assessment operations.
type Service interface {
	Assess(ctx context.Context, companyID string) (*risk.Assessment, error)
}

// Handler wires the risk endpoint to the risk service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a risk handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts risk endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/companies/{companyID}/risk", h.HandleAssess)
}

// HandleAssess handles GET /v1/companies/{companyID}/risk requests.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	companyID := strings.TrimSpace(chi.URLParam(r, "companyID"))
	if companyID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "company ID is required"))
		return
	}

	assessment, err := h.service.Assess(ctx, companyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "risk assessment failed",
			"request_id", requestID,
			"company_id", companyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "risk assessment completed",
		"request_id", requestID,
		"company_id", companyID,
		"risk_level", assessment.RiskLevel,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, assessment)
}
