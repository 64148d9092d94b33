// Package httptransport assembles the HTTP surface: the shared middleware
// chain, operational endpoints, and the per-module route registrations.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kyntel/internal/platform/middleware"
	"kyntel/pkg/platform/httputil"
)

// Registrar mounts a module's routes on the router. Each module handler
// implements this so main only assembles, never routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports the readiness of one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter builds the service router. auth may be nil, in which case the
// intelligence endpoints are open; /healthz and /metrics are always
// unauthenticated.
func NewRouter(
	logger *slog.Logger,
	auth func(http.Handler) http.Handler,
	checks []HealthCheck,
	registrars ...Registrar,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recover(logger))

	r.Get("/healthz", handleHealth(logger, checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(g chi.Router) {
		if auth != nil {
			g.Use(auth)
		}
		for _, reg := range registrars {
			reg.Register(g)
		}
	})

	return r
}

// handleHealth probes every registered dependency and reports per-dependency
// status. Any failing probe turns the overall response into a 503.
func handleHealth(logger *slog.Logger, checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"dependency", c.Name,
					"error", err,
				)
				deps[c.Name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[c.Name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		httputil.WriteJSON(w, status, body)
	}
}
