package api

import (
	"time"

	"github.com/promptforge/promptforge/internal/generate"
	"github.com/promptforge/promptforge/internal/quality"
	"github.com/promptforge/promptforge/internal/store"
)

// --- Analysis types ---

// AnalyzeRequest is the request body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// EvaluateRequest is the request body for POST /api/v1/evaluate.
type EvaluateRequest struct {
	Prompt      string `json:"prompt"`
	Requirement string `json:"requirement"`
}

// EvaluateResponse is a quality report plus its Markdown rendering.
type EvaluateResponse struct {
	quality.Report
	Markdown string `json:"markdown"`
}

// --- Generation types ---

// GenerateRequest is the request body for POST /api/v1/generate.
type GenerateRequest struct {
	Requirement string             `json:"requirement"`
	Format      string             `json:"format,omitempty"`
	Examples    []generate.Example `json:"examples,omitempty"`
	Experts     int                `json:"experts,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
}

// GenerateResponse is a generated prompt and the history entry it was saved as.
type GenerateResponse struct {
	*generate.Result
	HistoryID string `json:"history_id,omitempty"`
}

// --- Template types ---

// RenderRequest is the request body for POST /api/v1/templates/{id}/render.
type RenderRequest struct {
	Bindings map[string]string `json:"bindings"`
}

// RenderResponse is a filled-in template.
type RenderResponse struct {
	TemplateID string `json:"template_id"`
	Prompt     string `json:"prompt"`
}

// --- History types ---

// HistoryListResponse is the response for GET /api/v1/history.
type HistoryListResponse struct {
	Entries []*store.HistoryEntry `json:"entries"`
	Total   int                   `json:"total"`
}

// --- Token types ---

// CreateTokenRequest is the request body for POST /api/v1/tokens.
type CreateTokenRequest struct {
	Name      string `json:"name"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

// TokenResponse is the JSON representation of an API token.
type TokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Token      string     `json:"token,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at"`
}

// TokenListResponse is the response for GET /api/v1/tokens.
type TokenListResponse struct {
	Tokens []TokenResponse `json:"tokens"`
}
