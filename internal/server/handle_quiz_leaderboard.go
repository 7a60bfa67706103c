package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkcl/league-api/internal/quiz"
)

func handleQuizLeaderboard(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rows, err := svc.Results(id)
		if errors.Is(err, quiz.ErrQuizNotFound) {
			writeError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		if err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to load leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":          id,
			"leaderboard": quiz.Leaderboard(rows),
		})
	}
}
