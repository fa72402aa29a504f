// Package api is the JSON HTTP surface over the advisor, the template
// catalog, prompt generation and history.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptforge/promptforge/internal/advisor"
	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/generate"
	"github.com/promptforge/promptforge/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Advisor      *advisor.Advisor
	Generator    *generate.Generator
	HistoryStore store.HistoryStoreIface
	TokenStore   auth.TokenStore

	// BearerAuth guards every route when non-nil.
	BearerAuth *auth.BearerTokenMiddleware
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonContentType)
	if deps.BearerAuth != nil {
		r.Use(deps.BearerAuth.Authenticate)
	}

	registerAnalysisRoutes(r, deps.Advisor)
	registerTemplateRoutes(r, deps.Advisor.Catalog())
	registerGenerateRoutes(r, deps.Generator, deps.HistoryStore)
	registerHistoryRoutes(r, deps.HistoryStore)
	if deps.TokenStore != nil {
		registerTokenRoutes(r, deps.TokenStore)
	}
	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
