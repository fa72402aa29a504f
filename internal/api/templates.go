package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptforge/promptforge/internal/catalog"
)

type templatesAPIHandler struct {
	catalog *catalog.Catalog
}

func registerTemplateRoutes(r chi.Router, cat *catalog.Catalog) {
	h := &templatesAPIHandler{catalog: cat}
	r.Get("/templates", h.List)
	r.Get("/templates/{id}", h.Get)
	r.Post("/templates/{id}/render", h.Render)
}

// List returns templates, optionally filtered by task_type and tool.
// A tool filter also matches general-purpose templates.
// GET /api/v1/templates?task_type=&tool=
func (h *templatesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	templates := h.catalog.All()

	if s := q.Get("task_type"); s != "" {
		tt, err := catalog.ParseTaskType(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
			return
		}
		templates = h.catalog.FilterByTaskType(tt)
	}
	if s := q.Get("tool"); s != "" {
		tool, err := catalog.ParseTool(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
			return
		}
		keep := map[string]bool{}
		for _, t := range h.catalog.FilterByTool(tool) {
			keep[t.ID] = true
		}
		filtered := templates[:0]
		for _, t := range templates {
			if keep[t.ID] {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// Get returns one template.
// GET /api/v1/templates/{id}
func (h *templatesAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := h.catalog.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("template %q not found", id), codeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Render fills a template's placeholders.
// POST /api/v1/templates/{id}/render
func (h *templatesAPIHandler) Render(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req RenderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", codeBadRequest)
		return
	}

	out, err := h.catalog.Render(id, req.Bindings)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, RenderResponse{TemplateID: id, Prompt: out})
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("template %q not found", id), codeNotFound)
	case errors.Is(err, catalog.ErrMissingPlaceholder):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), codeMissingPlaceholder)
	default:
		writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
	}
}
