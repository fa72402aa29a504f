package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

type contextKey struct{}

// TokenFromContext returns the token that authenticated the request, if any.
func TokenFromContext(ctx context.Context) (*TokenRecord, bool) {
	rec, ok := ctx.Value(contextKey{}).(*TokenRecord)
	return rec, ok
}

// BearerTokenMiddleware authenticates API requests via Bearer token.
type BearerTokenMiddleware struct {
	tokens TokenStore
	now    func() time.Time
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware.
func NewBearerTokenMiddleware(ts TokenStore) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokens: ts, now: time.Now}
}

// Authenticate is an http.Handler middleware that extracts and validates a Bearer token.
// WHEN valid: injects the *TokenRecord into context and fires an async last_used_at update.
// WHEN invalid/missing/expired/revoked: returns 401 with {"error": "unauthorized"}.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		plaintext := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if plaintext == "" {
			writeUnauthorized(w)
			return
		}

		rec, err := m.tokens.GetByHash(r.Context(), HashToken(plaintext))
		if err != nil || !rec.Active(m.now()) {
			writeUnauthorized(w)
			return
		}

		// last_used_at is best effort and must not slow down the request.
		go func(id string) {
			if err := m.tokens.UpdateLastUsed(context.Background(), id); err != nil {
				log.Printf("auth: update last_used_at for token %s: %v", id, err)
			}
		}(rec.ID)

		ctx := context.WithValue(r.Context(), contextKey{}, rec)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeUnauthorized writes a 401 JSON response in the API's error shape.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "code": "UNAUTHORIZED"})
}
