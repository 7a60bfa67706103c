package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkcl/league-api/internal/quiz"
)

type activeResponse struct {
	ID     string `json:"id"`
	Active *bool  `json:"active"`
}

// handleQuizActive reads the raw activation override. A null active
// means no override is set and the weekly window decides.
func handleQuizActive(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		value, ok, err := svc.Flag(r.Context(), id)
		if err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to read quiz flag", err)
			return
		}
		resp := activeResponse{ID: id}
		if ok {
			resp.Active = &value
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleQuizSetActive stores the activation override. Admin only.
func handleQuizSetActive(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			Active *bool `json:"active"`
		}
		if err := readJSON(r, &body); err != nil || body.Active == nil {
			writeError(w, http.StatusBadRequest, "Body must be {\"active\": true|false}")
			return
		}

		if err := svc.SetFlag(r.Context(), id, *body.Active); err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to update quiz flag", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id, "active": *body.Active})
	}
}
