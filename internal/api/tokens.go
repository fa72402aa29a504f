package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/store"
)

// tokensAPIHandler provides REST handlers for API token management.
type tokensAPIHandler struct {
	tokens auth.TokenStore
}

// registerTokenRoutes registers token management routes on r.
func registerTokenRoutes(r chi.Router, tokens auth.TokenStore) {
	h := &tokensAPIHandler{tokens: tokens}
	r.Get("/tokens", h.List)
	r.Post("/tokens", h.Create)
	r.Delete("/tokens/{id}", h.Revoke)
}

// List returns all tokens without sensitive fields.
// GET /api/v1/tokens
func (h *tokensAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.tokens.List(r.Context())
	if err != nil {
		log.Printf("api: list tokens: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", codeInternal)
		return
	}

	resp := TokenListResponse{Tokens: make([]TokenResponse, 0, len(records))}
	for _, rec := range records {
		resp.Tokens = append(resp.Tokens, tokenResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create generates a new token and returns the plaintext once.
// POST /api/v1/tokens
func (h *tokensAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", codeBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", codeBadRequest)
		return
	}

	var expiresAt *time.Time
	if req.ExpiresIn != "" {
		d, err := time.ParseDuration(req.ExpiresIn)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "expires_in must be a positive duration such as 720h", codeBadRequest)
			return
		}
		t := time.Now().Add(d)
		expiresAt = &t
	}

	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		log.Printf("api: generate token: %v", err)
		writeError(w, http.StatusInternalServerError, "token generation failed", codeInternal)
		return
	}
	rec, err := h.tokens.Create(r.Context(), req.Name, hash, expiresAt)
	if err != nil {
		log.Printf("api: create token: %v", err)
		writeError(w, http.StatusInternalServerError, "token creation failed", codeInternal)
		return
	}

	item := tokenResponse(rec)
	item.Token = plaintext
	writeJSON(w, http.StatusCreated, item)
}

// Revoke soft-deletes a token.
// DELETE /api/v1/tokens/{id}
func (h *tokensAPIHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	err := h.tokens.Revoke(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found", codeNotFound)
		return
	}
	if err != nil {
		log.Printf("api: revoke token: %v", err)
		writeError(w, http.StatusInternalServerError, "revoke failed", codeInternal)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tokenResponse(rec *auth.TokenRecord) TokenResponse {
	item := TokenResponse{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt}
	if rec.LastUsedAt.Valid {
		t := rec.LastUsedAt.Time
		item.LastUsedAt = &t
	}
	if rec.ExpiresAt.Valid {
		t := rec.ExpiresAt.Time
		item.ExpiresAt = &t
	}
	if rec.RevokedAt.Valid {
		t := rec.RevokedAt.Time
		item.RevokedAt = &t
	}
	return item
}
