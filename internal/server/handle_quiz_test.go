package server

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestQuizIndex(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/quizzes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var body struct {
		Quizzes []struct {
			ID string `json:"id"`
		} `json:"quizzes"`
	}
	decodeBody(t, rec, &body)
	if len(body.Quizzes) != 1 || body.Quizzes[0].ID != "weekly-1" {
		t.Errorf("quizzes = %+v", body.Quizzes)
	}
}

func TestQuizNeverLeaksAnswers(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"answer"`) {
		t.Errorf("quiz response leaks answers: %s", rec.Body.String())
	}

	var body struct {
		Questions []struct {
			ID      string   `json:"id"`
			Options []string `json:"options"`
		} `json:"questions"`
		Status struct {
			Active bool `json:"active"`
		} `json:"status"`
	}
	decodeBody(t, rec, &body)
	if len(body.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(body.Questions))
	}
	if !body.Status.Active {
		t.Error("quiz without a window should be active")
	}
}

func TestQuizNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, path := range []string{
		"/api/quizzes/nope",
		"/api/quizzes/nope/answers",
	} {
		rec := doJSON(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: got %d, want 404", path, rec.Code)
		}
	}

	// A leaderboard nobody has played is empty, not missing.
	rec := doJSON(t, h, http.MethodGet, "/api/quizzes/nope/leaderboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard: got %d, want 200", rec.Code)
	}
	var board struct {
		Leaderboard []any `json:"leaderboard"`
	}
	decodeBody(t, rec, &board)
	if len(board.Leaderboard) != 0 {
		t.Errorf("leaderboard = %+v, want empty", board.Leaderboard)
	}
}

func TestQuizSubmitAndLeaderboard(t *testing.T) {
	h, _ := newTestHandler(t)

	submit := map[string]any{
		"name":      "Asha",
		"phone":     "9876543210",
		"startedAt": time.Now().UTC().Add(-2 * time.Minute).Format(time.RFC3339),
		"answers": []map[string]any{
			{"id": "q1", "answer": 1},
			{"id": "q2", "answer": 2},
		},
	}

	rec := doJSON(t, h, http.MethodPost, "/api/quizzes/weekly-1/submit", submit)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit returned %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Score            int  `json:"score"`
		Total            int  `json:"total"`
		AlreadySubmitted bool `json:"alreadySubmitted"`
	}
	decodeBody(t, rec, &result)
	if result.Score != 1 || result.Total != 2 || result.AlreadySubmitted {
		t.Errorf("result = %+v, want score=1 total=2", result)
	}

	// Same phone with country code formatting: idempotent, not re-scored.
	submit["phone"] = "+91 98765 43210"
	submit["answers"] = []map[string]any{{"id": "q1", "answer": 1}, {"id": "q2", "answer": 0}}
	rec = doJSON(t, h, http.MethodPost, "/api/quizzes/weekly-1/submit", submit)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat submit returned %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &result)
	if !result.AlreadySubmitted || result.Score != 1 {
		t.Errorf("repeat result = %+v, want alreadySubmitted with original score", result)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/leaderboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard returned %d", rec.Code)
	}
	var board struct {
		Leaderboard []struct {
			Rank  int    `json:"rank"`
			Phone string `json:"phone"`
		} `json:"leaderboard"`
	}
	decodeBody(t, rec, &board)
	if len(board.Leaderboard) != 1 {
		t.Fatalf("got %d leaderboard rows, want 1", len(board.Leaderboard))
	}
	if board.Leaderboard[0].Phone != "987****10" {
		t.Errorf("phone = %q, want redacted", board.Leaderboard[0].Phone)
	}
}

func TestQuizSubmitValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	started := time.Now().UTC().Format(time.RFC3339)
	cases := map[string]map[string]any{
		"blank name": {
			"name": "  ", "phone": "9876543210",
			"answers": []map[string]any{}, "startedAt": started,
		},
		"missing answers": {
			"name": "Asha", "phone": "9876543210", "startedAt": started,
		},
		"missing startedAt": {
			"name": "Asha", "phone": "9876543210",
			"answers": []map[string]any{},
		},
	}
	for name, body := range cases {
		rec := doJSON(t, h, http.MethodPost, "/api/quizzes/weekly-1/submit", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", name, rec.Code)
		}
	}

	// Nothing from the rejected bodies may be persisted.
	rec := doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/leaderboard", nil)
	var board struct {
		Leaderboard []any `json:"leaderboard"`
	}
	decodeBody(t, rec, &board)
	if len(board.Leaderboard) != 0 {
		t.Errorf("leaderboard = %+v, want empty", board.Leaderboard)
	}
}

func TestQuizActiveFlag(t *testing.T) {
	h, _ := newTestHandler(t)

	// No override set yet.
	rec := doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var body struct {
		Active *bool `json:"active"`
	}
	decodeBody(t, rec, &body)
	if body.Active != nil {
		t.Errorf("active = %v, want null", *body.Active)
	}

	// Setting the flag requires admin.
	rec = doJSON(t, h, http.MethodPost, "/api/quizzes/weekly-1/active", map[string]any{"active": false})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}

	cookie := adminCookie(t, h)
	rec = doJSON(t, h, http.MethodPost, "/api/quizzes/weekly-1/active", map[string]any{"active": false}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("set active returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/active", nil)
	decodeBody(t, rec, &body)
	if body.Active == nil || *body.Active {
		t.Errorf("active = %v, want false", body.Active)
	}

	// Flagged off beats the always-open (windowless) schedule.
	rec = doJSON(t, h, http.MethodPost, "/api/quizzes/weekly-1/submit", map[string]any{
		"name": "Asha", "phone": "9876543210",
		"startedAt": time.Now().UTC().Format(time.RFC3339),
		"answers":   []map[string]any{},
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403: %s", rec.Code, rec.Body.String())
	}
	var errBody errorResponse
	decodeBody(t, rec, &errBody)
	if errBody.Error != "Quiz is currently turned off." {
		t.Errorf("error = %q", errBody.Error)
	}
}

func TestQuizAnswersGating(t *testing.T) {
	h, _ := newTestHandler(t)

	// Windowless quiz with no flag: answers are published.
	rec := doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/answers", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Answers []struct {
			ID     string `json:"id"`
			Answer int    `json:"answer"`
		} `json:"answers"`
	}
	decodeBody(t, rec, &body)
	if len(body.Answers) != 2 || body.Answers[0].Answer != 1 {
		t.Errorf("answers = %+v", body.Answers)
	}

	// Flag the quiz on: answer key goes dark.
	cookie := adminCookie(t, h)
	doJSON(t, h, http.MethodPost, "/api/quizzes/weekly-1/active", map[string]any{"active": true}, cookie)

	rec = doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/answers", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403", rec.Code)
	}

	// The quizmaster password bypasses the gate.
	rec = doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/answers?password="+testAnswersPass, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 with password", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/quizzes/weekly-1/answers?password=wrong", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403 with wrong password", rec.Code)
	}
}
