package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rkcl/league-api/internal/kv"
	"github.com/rkcl/league-api/internal/league"
)

// InactiveError rejects a submission outside the play window. Reason is
// surfaced verbatim to the client.
type InactiveError struct {
	Reason string
}

func (e *InactiveError) Error() string { return e.Reason }

// Answer is one submitted answer; a nil index means the question was
// skipped.
type Answer struct {
	ID     string `json:"id"`
	Answer *int   `json:"answer"`
}

// Submission is the body of POST /api/quizzes/{id}/submit.
type Submission struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Answers   []Answer `json:"answers"`
	StartedAt string   `json:"startedAt"`
}

// SubmitResult is returned to the player. Correct answers are never
// echoed here.
type SubmitResult struct {
	Score            int  `json:"score"`
	Total            int  `json:"total"`
	AlreadySubmitted bool `json:"alreadySubmitted,omitempty"`
}

// Service ties together the catalog, the KV activation flag, and the
// results store.
type Service struct {
	catalog *Catalog
	results *ResultsStore
	store   kv.Store
	now     func() time.Time
}

func NewService(catalog *Catalog, results *ResultsStore, store kv.Store) *Service {
	return &Service{catalog: catalog, results: results, store: store, now: time.Now}
}

func (s *Service) Catalog() *Catalog { return s.catalog }

func (s *Service) Results(id string) ([]league.QuizResult, error) {
	return s.results.List(id)
}

// Flag reads the per-quiz activation override. ok is false when no
// override is set.
func (s *Service) Flag(ctx context.Context, id string) (value, ok bool, err error) {
	err = s.store.Get(ctx, ActiveKey(id), &value)
	if errors.Is(err, kv.ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("reading activation flag: %w", err)
	}
	return value, true, nil
}

// SetFlag stores the activation override.
func (s *Service) SetFlag(ctx context.Context, id string, active bool) error {
	if err := s.store.Set(ctx, ActiveKey(id), active); err != nil {
		return fmt.Errorf("writing activation flag: %w", err)
	}
	return nil
}

// Status computes the play status for a quiz. A stored flag is
// authoritative; otherwise the weekly window decides. Window projection
// times are included either way so the client can show the schedule.
func (s *Service) Status(ctx context.Context, q *league.Quiz) (Status, error) {
	st := WindowStatus(q.WeeklyWindow, s.now())
	if flag, ok, err := s.Flag(ctx, q.ID); err != nil {
		return Status{}, err
	} else if ok {
		st.Active = flag
	}
	return st, nil
}

// AnswersAvailable reports whether the answer key may be published:
// never while the quiz is flagged on, and never on the quiz day before
// the weekly window has closed.
func (s *Service) AnswersAvailable(ctx context.Context, q *league.Quiz) (bool, error) {
	flag, ok, err := s.Flag(ctx, q.ID)
	if err != nil {
		return false, err
	}
	if ok {
		return !flag, nil
	}
	return windowClosedForToday(q.WeeklyWindow, s.now()), nil
}

// phoneKey strips everything but digits and drops any country-code
// prefix beyond the 10-digit local number, so "+91 98765 43210" and
// "9876543210" map to the same submission record.
func phoneKey(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

func submittedKey(id, phone string) string {
	return fmt.Sprintf("quiz:%s:submitted:%s", id, phoneKey(phone))
}

// Submit scores a submission and records the result. At most one result
// is kept per phone number: a repeat submission short-circuits to the
// previously recorded score instead of failing.
func (s *Service) Submit(ctx context.Context, id string, sub Submission) (SubmitResult, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Phone = strings.TrimSpace(sub.Phone)

	q, err := s.catalog.Load(id)
	if err != nil {
		return SubmitResult{}, err
	}

	if flag, ok, err := s.Flag(ctx, q.ID); err != nil {
		return SubmitResult{}, err
	} else if ok {
		if !flag {
			return SubmitResult{}, &InactiveError{Reason: "Quiz is currently turned off."}
		}
	} else if !WindowStatus(q.WeeklyWindow, s.now()).Active {
		return SubmitResult{}, &InactiveError{
			Reason: "Quiz is not active right now. Please submit during the scheduled window.",
		}
	}

	// Idempotence per phone: return the recorded score, don't re-score.
	var prev league.QuizResult
	err = s.store.Get(ctx, submittedKey(id, sub.Phone), &prev)
	if err == nil {
		return SubmitResult{Score: prev.Score, Total: len(q.Questions), AlreadySubmitted: true}, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return SubmitResult{}, fmt.Errorf("reading submission record: %w", err)
	}

	score := scoreAnswers(q.Questions, sub.Answers)

	submittedAt := s.now().UTC()
	var durationMs int64
	startedAt := submittedAt
	if t, err := time.Parse(time.RFC3339, sub.StartedAt); err == nil {
		startedAt = t
		if d := submittedAt.Sub(t).Milliseconds(); d > 0 {
			durationMs = d
		}
	}

	result := league.QuizResult{
		Name:        sub.Name,
		Phone:       sub.Phone,
		Score:       score,
		DurationMs:  durationMs,
		StartedAt:   startedAt.UTC().Format(time.RFC3339),
		SubmittedAt: submittedAt.Format(time.RFC3339),
	}

	if err := s.results.Append(id, result); err != nil {
		return SubmitResult{}, err
	}
	if err := s.store.Set(ctx, submittedKey(id, sub.Phone), result); err != nil {
		return SubmitResult{}, fmt.Errorf("writing submission record: %w", err)
	}

	return SubmitResult{Score: score, Total: len(q.Questions)}, nil
}

func scoreAnswers(questions []league.Question, answers []Answer) int {
	key := make(map[string]int, len(questions))
	for _, q := range questions {
		if q.ID != "" {
			key[q.ID] = q.Answer
		}
	}
	score := 0
	for _, a := range answers {
		if a.Answer == nil {
			continue
		}
		if correct, ok := key[a.ID]; ok && *a.Answer == correct {
			score++
		}
	}
	return score
}
