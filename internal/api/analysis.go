package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/promptforge/promptforge/internal/advisor"
	"github.com/promptforge/promptforge/internal/quality"
)

type analysisAPIHandler struct {
	advisor *advisor.Advisor
}

func registerAnalysisRoutes(r chi.Router, a *advisor.Advisor) {
	h := &analysisAPIHandler{advisor: a}
	r.Post("/analyze", h.Analyze)
	r.Post("/evaluate", h.Evaluate)
}

// Analyze classifies a request and recommends templates for it.
// POST /api/v1/analyze
func (h *analysisAPIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", codeBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.advisor.Advise(req.Text))
}

// Evaluate grades a prompt, optionally against the requirement it was written for.
// POST /api/v1/evaluate
func (h *analysisAPIHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", codeBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required", codeBadRequest)
		return
	}
	report := h.advisor.Evaluate(req.Prompt, req.Requirement)
	writeJSON(w, http.StatusOK, EvaluateResponse{Report: report, Markdown: quality.Markdown(report)})
}
