package api

import (
	"net/http"
	"strconv"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	maxBodyBytes = 1 << 20
)

// parseLimit reads the limit query parameter.
// limit defaults to 50 and is silently capped at 200.
func parseLimit(r *http.Request) int {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
