package quiz

import (
	"regexp"
	"sort"

	"github.com/rkcl/league-api/internal/league"
)

// LeaderboardEntry is a ranked, phone-redacted result row.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Score       int    `json:"score"`
	DurationMs  int64  `json:"durationMs"`
	SubmittedAt string `json:"submittedAt"`
}

var phoneRedact = regexp.MustCompile(`(\d{3})\d+(\d{2})$`)

// redactPhone keeps the first 3 and last 2 digits and masks the middle.
// Numbers too short to match are left untouched.
func redactPhone(phone string) string {
	return phoneRedact.ReplaceAllString(phone, "$1****$2")
}

// Leaderboard sorts results by (score desc, duration asc, submitted
// asc) and assigns dense ranks: exact ties share a rank and the next
// distinct row gets rank+1.
func Leaderboard(rows []league.QuizResult) []LeaderboardEntry {
	sorted := make([]league.QuizResult, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DurationMs != b.DurationMs {
			return a.DurationMs < b.DurationMs
		}
		return a.SubmittedAt < b.SubmittedAt
	})

	entries := make([]LeaderboardEntry, 0, len(sorted))
	rank := 0
	for i, r := range sorted {
		if i == 0 || !sameKey(sorted[i-1], r) {
			rank++
		}
		entries = append(entries, LeaderboardEntry{
			Rank:        rank,
			Name:        r.Name,
			Phone:       redactPhone(r.Phone),
			Score:       r.Score,
			DurationMs:  r.DurationMs,
			SubmittedAt: r.SubmittedAt,
		})
	}
	return entries
}

func sameKey(a, b league.QuizResult) bool {
	return a.Score == b.Score && a.DurationMs == b.DurationMs && a.SubmittedAt == b.SubmittedAt
}
