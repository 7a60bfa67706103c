package quiz

import (
	"testing"

	"github.com/rkcl/league-api/internal/league"
)

func TestLeaderboardOrdering(t *testing.T) {
	rows := []league.QuizResult{
		{Name: "Slow", Phone: "9876543210", Score: 5, DurationMs: 9000, SubmittedAt: "2026-03-15T14:40:00Z"},
		{Name: "Fast", Phone: "9812345678", Score: 5, DurationMs: 4000, SubmittedAt: "2026-03-15T14:41:00Z"},
		{Name: "Low", Phone: "9800011122", Score: 2, DurationMs: 1000, SubmittedAt: "2026-03-15T14:39:00Z"},
		{Name: "Early", Phone: "9811122233", Score: 5, DurationMs: 4000, SubmittedAt: "2026-03-15T14:38:00Z"},
	}

	lb := Leaderboard(rows)

	gotNames := []string{lb[0].Name, lb[1].Name, lb[2].Name, lb[3].Name}
	wantNames := []string{"Early", "Fast", "Slow", "Low"}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("order = %v, want %v", gotNames, wantNames)
		}
	}
	for i, want := range []int{1, 2, 3, 4} {
		if lb[i].Rank != want {
			t.Errorf("rank[%d] = %d, want %d", i, lb[i].Rank, want)
		}
	}
}

func TestLeaderboardDenseRankForTies(t *testing.T) {
	rows := []league.QuizResult{
		{Name: "A", Phone: "9876543210", Score: 3, DurationMs: 5000, SubmittedAt: "2026-03-15T14:40:00Z"},
		{Name: "B", Phone: "9812345678", Score: 3, DurationMs: 5000, SubmittedAt: "2026-03-15T14:40:00Z"},
		{Name: "C", Phone: "9800011122", Score: 1, DurationMs: 2000, SubmittedAt: "2026-03-15T14:41:00Z"},
	}

	lb := Leaderboard(rows)

	if lb[0].Rank != 1 || lb[1].Rank != 1 {
		t.Errorf("tied rows should share rank 1, got %d and %d", lb[0].Rank, lb[1].Rank)
	}
	if lb[2].Rank != 2 {
		t.Errorf("next distinct row should get rank 2, got %d", lb[2].Rank)
	}
}

func TestLeaderboardRedactsPhones(t *testing.T) {
	rows := []league.QuizResult{
		{Name: "A", Phone: "9876543210", Score: 1},
		{Name: "B", Phone: "98", Score: 0},
	}

	lb := Leaderboard(rows)

	if lb[0].Phone != "987****10" {
		t.Errorf("redacted = %q", lb[0].Phone)
	}
	// Too short to match the pattern: left as-is.
	if lb[1].Phone != "98" {
		t.Errorf("short phone = %q", lb[1].Phone)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	if lb := Leaderboard(nil); len(lb) != 0 {
		t.Errorf("expected empty leaderboard, got %v", lb)
	}
}
