// Package httptransport assembles the HTTP surface: routes, gate ordering,
// and the operational endpoints. The middleware chain is structural — the
// authentication gate always wraps the role gate, which always wraps the
// business handler.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/handler"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	userstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/user"
	authmw "github.com/dhanuj00123/HeadlessCms/internal/platform/middleware/auth"
	rolemw "github.com/dhanuj00123/HeadlessCms/internal/platform/middleware/role"
)

// NewRouter wires the identity routes with their gates.
func NewRouter(
	h *handler.Handler,
	verifier authmw.TokenVerifier,
	users userstore.Store,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/auth", func(r chi.Router) {
		h.RegisterAuth(r)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(authmw.RequireAuth(verifier, users, logger))

		r.Group(func(r chi.Router) {
			r.Use(rolemw.Require(logger, models.RoleUser, models.RoleEditor, models.RoleAdmin))
			h.RegisterUsers(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(rolemw.Require(logger, models.RoleAdmin))
			h.RegisterAdmin(r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"route not found"}`))
	})

	return r
}
