package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rkcl/league-api/internal/quiz"
)

// handleQuizSubmit scores a submission. Submissions outside the play
// window are rejected with 403 and a human-readable reason.
func handleQuizSubmit(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var sub quiz.Submission
		if err := readJSON(r, &sub); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		if strings.TrimSpace(sub.Name) == "" || strings.TrimSpace(sub.Phone) == "" {
			writeError(w, http.StatusBadRequest, "Name and phone are required")
			return
		}
		if sub.Answers == nil || strings.TrimSpace(sub.StartedAt) == "" {
			writeError(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		result, err := svc.Submit(r.Context(), id, sub)
		if err != nil {
			var inactive *quiz.InactiveError
			switch {
			case errors.Is(err, quiz.ErrQuizNotFound):
				writeError(w, http.StatusNotFound, "Quiz not found")
			case errors.As(err, &inactive):
				writeError(w, http.StatusForbidden, inactive.Reason)
			default:
				writeErrorDetails(w, http.StatusInternalServerError, "Failed to submit quiz", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"ok":               true,
			"score":            result.Score,
			"total":            result.Total,
			"alreadySubmitted": result.AlreadySubmitted,
		})
	}
}
