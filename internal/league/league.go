// Package league defines the core domain types for the cricket-league
// site: the auction state document, quizzes and their results, and
// player registrations. It has zero external dependencies — everything
// here is pure Go.
package league

import "strings"

// NormalizeName returns the canonical identity key for a player name:
// lowercased, whitespace-collapsed, trimmed. Display names keep their
// original casing; this key is only used for dedup and lookups.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Player is a purchased player inside a team roster.
type Player struct {
	FullName string `json:"fullName"`
	Points   int    `json:"points"`
	Time     string `json:"time"`
}

// TeamEntry holds a team's budget and purchased players, in purchase order.
type TeamEntry struct {
	Budget  int      `json:"budget"`
	Players []Player `json:"players"`
}

// SaleRecord marks a player as sold. A normalized-name key present in
// AuctionState.Sold means the player cannot be sold again.
type SaleRecord struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
	Time   string `json:"time"`
}

// Owner is a team owner. Playing owners get a smaller retention quota.
type Owner struct {
	Name    string `json:"name"`
	Playing bool   `json:"playing"`
}

// Retention is a pre-auction assignment of a player to a team.
type Retention struct {
	FullName string `json:"fullName"`
	Time     string `json:"time"`
}

// UnsoldEntry is a player who was drawn but not purchased. Rounds counts
// how many times the player has gone unsold; Unassigned removes the
// player from future draw pools without deleting the record.
type UnsoldEntry struct {
	FullName   string `json:"fullName"`
	Time       string `json:"time"`
	Rounds     int    `json:"rounds,omitempty"`
	Unassigned bool   `json:"unassigned,omitempty"`
}

// AuctionState is the single document holding all auction data. It is
// read and written whole on every mutation.
type AuctionState struct {
	Teams      map[string]*TeamEntry  `json:"teams"`
	Sold       map[string]*SaleRecord `json:"sold"`
	Owners     map[string]Owner       `json:"owners"`
	Retentions map[string][]Retention `json:"retentions"`
	Unsold     []UnsoldEntry          `json:"unsold"`
}

// NewAuctionState returns an empty document with all collections allocated.
func NewAuctionState() *AuctionState {
	return &AuctionState{
		Teams:      make(map[string]*TeamEntry),
		Sold:       make(map[string]*SaleRecord),
		Owners:     make(map[string]Owner),
		Retentions: make(map[string][]Retention),
		Unsold:     []UnsoldEntry{},
	}
}

// Init allocates any collections left nil by JSON decoding, so callers
// never have to nil-check individual maps.
func (s *AuctionState) Init() {
	if s.Teams == nil {
		s.Teams = make(map[string]*TeamEntry)
	}
	if s.Sold == nil {
		s.Sold = make(map[string]*SaleRecord)
	}
	if s.Owners == nil {
		s.Owners = make(map[string]Owner)
	}
	if s.Retentions == nil {
		s.Retentions = make(map[string][]Retention)
	}
	if s.Unsold == nil {
		s.Unsold = []UnsoldEntry{}
	}
}

// TeamSummary is derived from a team entry on every read.
type TeamSummary struct {
	Budget    int `json:"budget"`
	Spent     int `json:"spent"`
	Remaining int `json:"remaining"`
	Count     int `json:"count"`
}

// Summary computes per-team spend totals. Remaining may go negative —
// budget sufficiency is deliberately not enforced at sale time.
func (s *AuctionState) Summary() map[string]TeamSummary {
	out := make(map[string]TeamSummary, len(s.Teams))
	for name, t := range s.Teams {
		spent := 0
		for _, p := range t.Players {
			spent += p.Points
		}
		out[name] = TeamSummary{
			Budget:    t.Budget,
			Spent:     spent,
			Remaining: t.Budget - spent,
			Count:     len(t.Players),
		}
	}
	return out
}

// WeeklyWindow is a recurring single-day-of-week interval during which a
// quiz accepts submissions. DayOfWeek follows time.Weekday numbering
// (0 = Sunday). Start and End are "HH:MM" wall-clock times in IST.
type WeeklyWindow struct {
	DayOfWeek int    `json:"dayOfWeek"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// Question is a single quiz question. Answer is the index into Options
// and must never reach clients outside the answers endpoint.
type Question struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// Quiz is a file-sourced, read-only quiz definition.
type Quiz struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	DurationMinutes int           `json:"durationMinutes"`
	Questions       []Question    `json:"questions"`
	WeeklyWindow    *WeeklyWindow `json:"weeklyWindow,omitempty"`
}

// QuizResult is one scored submission, appended to the per-quiz results
// collection.
type QuizResult struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Score       int    `json:"score"`
	DurationMs  int64  `json:"durationMs"`
	StartedAt   string `json:"startedAt"`
	SubmittedAt string `json:"submittedAt"`
}

// Registration is one roster row, enriched with auction-era attributes
// joined from the secondary auction CSV when available.
type Registration struct {
	Timestamp    string `json:"timestamp,omitempty"`
	FullName     string `json:"fullName"`
	Age          string `json:"age"`
	Contact      string `json:"contact,omitempty"`
	PlayingStyle string `json:"playingStyle,omitempty"`
	TshirtSize   string `json:"tshirtSize,omitempty"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	BasePrice    int    `json:"basePrice,omitempty"`
	Category     string `json:"category,omitempty"`
}
