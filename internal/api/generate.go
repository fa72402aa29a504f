package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptforge/promptforge/internal/generate"
	"github.com/promptforge/promptforge/internal/metrics"
	"github.com/promptforge/promptforge/internal/store"
)

type generateAPIHandler struct {
	generator *generate.Generator
	history   store.HistoryStoreIface
}

func registerGenerateRoutes(r chi.Router, g *generate.Generator, history store.HistoryStoreIface) {
	h := &generateAPIHandler{generator: g, history: history}
	r.Post("/generate", h.Generate)
}

// Generate writes a prompt for a requirement and saves it to history.
// POST /api/v1/generate
func (h *generateAPIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", codeBadRequest)
		return
	}

	res, err := h.generator.Generate(r.Context(), generate.Request{
		Requirement: req.Requirement,
		Format:      generate.Format(req.Format),
		Examples:    req.Examples,
		Experts:     req.Experts,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, generate.ErrEmptyRequirement) || errors.Is(err, generate.ErrUnknownFormat) {
			writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
			return
		}
		log.Printf("api: generate: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", codeInternal)
		return
	}

	resp := GenerateResponse{Result: res}
	if h.history != nil {
		entry, err := h.history.Create(r.Context(), store.HistoryEntry{
			Requirement:  res.Requirement,
			Format:       string(res.Format),
			Provider:     res.Provider,
			Prompt:       res.Prompt,
			Fallback:     res.Fallback,
			QualityScore: res.Quality.Overall,
			Grade:        res.Quality.Grade,
		})
		if err != nil {
			// The prompt is still useful without a history entry.
			log.Printf("api: save history: %v", err)
		} else {
			resp.HistoryID = entry.ID
			refreshHistoryGauge(r.Context(), h.history)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func refreshHistoryGauge(ctx context.Context, history store.HistoryStoreIface) {
	n, err := history.Count(ctx)
	if err != nil {
		log.Printf("api: count history: %v", err)
		return
	}
	metrics.HistoryEntriesTotal.Set(float64(n))
}
