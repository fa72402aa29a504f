// Package handler assembles the HTTP server: middleware, health and metrics
// endpoints, and the /api/v1 sub-router.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptforge/promptforge/internal/api"
	"github.com/promptforge/promptforge/internal/build"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	API api.Deps
	DB  Pinger
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// Health and metrics stay outside the token-protected API.
	r.Get("/healthz", healthz(deps.DB))
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api/v1", api.NewAPIRouter(deps.API))
	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				status, code = "database unavailable", http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"status":"` + status + `","version":"` + build.Version + `"}`))
	}
}
