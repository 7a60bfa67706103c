package server

import (
	"net/http"

	"github.com/rkcl/league-api/internal/quiz"
)

func handleQuizIndex(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Catalog().Index()
		if err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to load quizzes", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"quizzes": entries})
	}
}
