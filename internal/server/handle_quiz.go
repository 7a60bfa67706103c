package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkcl/league-api/internal/league"
	"github.com/rkcl/league-api/internal/quiz"
)

// publicQuestion is a question with the answer stripped.
type publicQuestion struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type quizResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	DurationMinutes int                  `json:"durationMinutes"`
	Questions       []publicQuestion     `json:"questions"`
	WeeklyWindow    *league.WeeklyWindow `json:"weeklyWindow,omitempty"`
	Status          quiz.Status          `json:"status"`
}

// handleQuiz serves one quiz for playing: questions without answers,
// plus the computed window status.
func handleQuiz(svc *quiz.Service) http.HandlerFunc {
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

		status, err := svc.Status(r.Context(), q)
		if err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to load quiz", err)
			return
		}

		questions := make([]publicQuestion, 0, len(q.Questions))
		for _, question := range q.Questions {
			questions = append(questions, publicQuestion{
				ID:      question.ID,
				Type:    question.Type,
				Text:    question.Text,
				Options: question.Options,
			})
		}

		writeJSON(w, http.StatusOK, quizResponse{
			ID:              q.ID,
			Title:           q.Title,
			DurationMinutes: q.DurationMinutes,
			Questions:       questions,
			WeeklyWindow:    q.WeeklyWindow,
			Status:          status,
		})
	}
}
