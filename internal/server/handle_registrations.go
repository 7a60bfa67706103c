package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/rkcl/league-api/internal/registrations"
)

// handleRegistrations serves the cached roster. ?refresh=1 forces a
// refetch from the published CSV.
func handleRegistrations(svc *registrations.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh := r.URL.Query().Get("refresh") == "1"
		rows, cached, err := svc.List(r.Context(), refresh)
		if errors.Is(err, registrations.ErrNoSource) {
			writeError(w, http.StatusInternalServerError, "Registrations source is not configured")
			return
		}
		if err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to load registrations", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"count":       len(rows),
			"data":        rows,
			"cached":      cached,
			"lastUpdated": svc.LastUpdated().UTC().Format(time.RFC3339),
		})
	}
}
