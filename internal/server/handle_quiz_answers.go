package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkcl/league-api/internal/quiz"
)

type answerEntry struct {
	ID     string `json:"id"`
	Answer int    `json:"answer"`
}

// handleQuizAnswers publishes the answer key once the weekly window has
// closed (or the quiz is flagged off). A configured password unlocks it
// early for the quizmaster.
func handleQuizAnswers(svc *quiz.Service, auth *AdminAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		q, err := svc.Catalog().Load(id)
		if errors.Is(err, quiz.ErrQuizNotFound) {
			writeError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		if err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to load quiz", err)
			return
		}

		if !auth.AnswersUnlocked(r.URL.Query().Get("password")) {
			available, err := svc.AnswersAvailable(r.Context(), q)
			if err != nil {
				writeErrorDetails(w, http.StatusInternalServerError, "Failed to load quiz", err)
				return
			}
			if !available {
				writeError(w, http.StatusForbidden, "Answers will be available after the quiz window closes.")
				return
			}
		}

		answers := make([]answerEntry, 0, len(q.Questions))
		for _, question := range q.Questions {
			answers = append(answers, answerEntry{ID: question.ID, Answer: question.Answer})
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": q.ID, "answers": answers})
	}
}
