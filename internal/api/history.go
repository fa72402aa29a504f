package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptforge/promptforge/internal/store"
)

type historyAPIHandler struct {
	history store.HistoryStoreIface
}

func registerHistoryRoutes(r chi.Router, history store.HistoryStoreIface) {
	if history == nil {
		return
	}
	h := &historyAPIHandler{history: history}
	r.Get("/history", h.List)
	r.Get("/history/{id}", h.Get)
	r.Delete("/history/{id}", h.Delete)
}

// List returns the newest history entries.
// GET /api/v1/history?limit=
func (h *historyAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.history.List(r.Context(), parseLimit(r))
	if err != nil {
		log.Printf("api: list history: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", codeInternal)
		return
	}
	total, err := h.history.Count(r.Context())
	if err != nil {
		log.Printf("api: count history: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", codeInternal)
		return
	}
	writeJSON(w, http.StatusOK, HistoryListResponse{Entries: entries, Total: total})
}

// Get returns one history entry.
// GET /api/v1/history/{id}
func (h *historyAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.history.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "history entry not found", codeNotFound)
		return
	}
	if err != nil {
		log.Printf("api: get history: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", codeInternal)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete removes one history entry.
// DELETE /api/v1/history/{id}
func (h *historyAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.history.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "history entry not found", codeNotFound)
		return
	}
	if err != nil {
		log.Printf("api: delete history: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", codeInternal)
		return
	}
	refreshHistoryGauge(r.Context(), h.history)
	w.WriteHeader(http.StatusNoContent)
}
