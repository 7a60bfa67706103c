// Package auction implements the live player-auction state machine: a
// single JSON document in the KV store mutated by discriminated admin
// actions. Every action is a read-entire-document, validate, mutate,
// write-entire-document cycle; a service-level mutex serializes those
// cycles so concurrent admin sessions cannot lose each other's writes.
package auction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rkcl/league-api/internal/kv"
	"github.com/rkcl/league-api/internal/league"
)

// StateKey is the fixed KV key holding the auction document.
const StateKey = "auction:state:v1"

// Code classifies an action failure for HTTP mapping.
type Code int

const (
	CodeInvalid Code = iota // malformed or missing fields
	CodeNotFound
	CodeConflict // duplicate sale, retention limit, and similar
)

// Error is the tagged result of a failed action. Handlers map Code to a
// status and surface Message verbatim.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalidf(format string, args ...any) error {
	return &Error{Code: CodeInvalid, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// TeamBudget is one entry of the setTeams bulk upsert.
type TeamBudget struct {
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
}

// Request is the union of all action payloads, discriminated by Action.
// Numeric fields are pointers so "missing" and "zero" stay distinct,
// and float64 so a fractional number reaches validation instead of
// failing the decode.
type Request struct {
	Action    string       `json:"action"`
	FullName  string       `json:"fullName"`
	Team      string       `json:"team"`
	Name      string       `json:"name"`
	OwnerName string       `json:"ownerName"`
	Playing   bool         `json:"playing"`
	Points    *float64     `json:"points"`
	Budget    *float64     `json:"budget"`
	Teams     []TeamBudget `json:"teams"`
}

// wholeNumber accepts a JSON number only when it is a non-negative
// integer.
func wholeNumber(f float64) (int, bool) {
	n := int(f)
	if float64(n) != f || n < 0 {
		return 0, false
	}
	return n, true
}

// Service applies auction actions against the KV-stored document.
type Service struct {
	store kv.Store
	mu    sync.Mutex
	now   func() time.Time
}

func NewService(store kv.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// State loads the current document, creating an empty one lazily when
// the key is absent. Reads never persist anything.
func (s *Service) State(ctx context.Context) (*league.AuctionState, error) {
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) (*league.AuctionState, error) {
	st := league.NewAuctionState()
	err := s.store.Get(ctx, StateKey, st)
	if errors.Is(err, kv.ErrNotFound) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading auction state: %w", err)
	}
	st.Init()
	return st, nil
}

// Apply runs one action and persists the whole document on success.
// A failed action leaves the stored document untouched.
func (s *Service) Apply(ctx context.Context, req Request) (*league.AuctionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Format(time.RFC3339)
	if err := apply(st, req, now); err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, StateKey, st); err != nil {
		return nil, fmt.Errorf("writing auction state: %w", err)
	}
	return st, nil
}

func apply(st *league.AuctionState, req Request, now string) error {
	switch req.Action {
	case "sell":
		return sell(st, req, now)
	case "unsell":
		return unsell(st, req)
	case "updatePoints":
		return updatePoints(st, req)
	case "setTeams":
		return setTeams(st, req)
	case "setBudget":
		return setBudget(st, req)
	case "setOwner":
		return setOwner(st, req)
	case "retain":
		return retain(st, req, now)
	case "unsold", "markUnsold":
		return markUnsold(st, req, now)
	case "markUnassigned":
		return markUnassigned(st, req)
	case "clearUnsold":
		st.Unsold = []league.UnsoldEntry{}
		return nil
	default:
		return invalidf("Unknown action")
	}
}

func sell(st *league.AuctionState, req Request, now string) error {
	fullName := trim(req.FullName)
	team := trim(req.Team)
	if fullName == "" || team == "" || req.Points == nil {
		return invalidf("Invalid sell payload")
	}
	points, ok := wholeNumber(*req.Points)
	if !ok {
		return invalidf("Invalid sell payload")
	}
	key := league.NormalizeName(fullName)
	if _, dup := st.Sold[key]; dup {
		return conflictf("Player already sold")
	}

	if st.Teams[team] == nil {
		st.Teams[team] = &league.TeamEntry{Budget: 0, Players: []league.Player{}}
	}
	st.Teams[team].Players = append(st.Teams[team].Players, league.Player{
		FullName: fullName,
		Points:   points,
		Time:     now,
	})
	st.Sold[key] = &league.SaleRecord{Team: team, Points: points, Time: now}

	// A sold player leaves the unsold queue.
	kept := st.Unsold[:0]
	for _, u := range st.Unsold {
		if league.NormalizeName(u.FullName) != key {
			kept = append(kept, u)
		}
	}
	st.Unsold = kept
	return nil
}

func unsell(st *league.AuctionState, req Request) error {
	key := league.NormalizeName(req.FullName)
	sale, ok := st.Sold[key]
	if !ok {
		return notFoundf("Player not sold")
	}
	if t := st.Teams[sale.Team]; t != nil {
		kept := t.Players[:0]
		for _, p := range t.Players {
			if league.NormalizeName(p.FullName) != key {
				kept = append(kept, p)
			}
		}
		t.Players = kept
	}
	delete(st.Sold, key)
	return nil
}

func updatePoints(st *league.AuctionState, req Request) error {
	team := trim(req.Team)
	fullName := trim(req.FullName)
	if team == "" || fullName == "" || req.Points == nil {
		return invalidf("Invalid update payload")
	}
	points, ok := wholeNumber(*req.Points)
	if !ok {
		return invalidf("Invalid update payload")
	}
	t, ok := st.Teams[team]
	if !ok {
		return notFoundf("Team not found")
	}
	key := league.NormalizeName(fullName)
	found := false
	for i := range t.Players {
		if league.NormalizeName(t.Players[i].FullName) == key {
			t.Players[i].Points = points
			found = true
		}
	}
	if !found {
		return notFoundf("Player not found in team")
	}
	if sale, ok := st.Sold[key]; ok {
		sale.Points = points
	}
	return nil
}

// setTeams upserts budgets in bulk. Invalid entries — blank names,
// negative or fractional budgets — are skipped, not errored: the admin
// UI sends whole spreadsheet pastes.
func setTeams(st *league.AuctionState, req Request) error {
	for _, t := range req.Teams {
		name := trim(t.Name)
		budget, ok := wholeNumber(t.Budget)
		if name == "" || !ok {
			continue
		}
		if st.Teams[name] == nil {
			st.Teams[name] = &league.TeamEntry{Players: []league.Player{}}
		}
		st.Teams[name].Budget = budget
	}
	return nil
}

func setBudget(st *league.AuctionState, req Request) error {
	name := trim(req.Name)
	if name == "" || req.Budget == nil {
		return invalidf("Invalid budget payload")
	}
	budget, ok := wholeNumber(*req.Budget)
	if !ok {
		return invalidf("Invalid budget payload")
	}
	if st.Teams[name] == nil {
		st.Teams[name] = &league.TeamEntry{Players: []league.Player{}}
	}
	st.Teams[name].Budget = budget
	return nil
}

func setOwner(st *league.AuctionState, req Request) error {
	team := trim(req.Team)
	if team == "" {
		return invalidf("Team required")
	}
	st.Owners[team] = league.Owner{Name: trim(req.OwnerName), Playing: req.Playing}
	return nil
}

func retain(st *league.AuctionState, req Request, now string) error {
	team := trim(req.Team)
	fullName := trim(req.FullName)
	if team == "" || fullName == "" {
		return invalidf("Team and fullName required")
	}

	limit := 2
	if st.Owners[team].Playing {
		limit = 1
	}
	if len(st.Retentions[team]) >= limit {
		return conflictf("Retention limit reached (%d) for %s", limit, team)
	}

	key := league.NormalizeName(fullName)
	for other, list := range st.Retentions {
		for _, r := range list {
			if league.NormalizeName(r.FullName) != key {
				continue
			}
			if other == team {
				return conflictf("Player already retained")
			}
			return conflictf("Player already retained by %s", other)
		}
	}

	st.Retentions[team] = append(st.Retentions[team], league.Retention{
		FullName: fullName,
		Time:     now,
	})
	return nil
}

// markUnsold adds a player to the unsold queue. Re-marking a queued
// player bumps its round counter instead of duplicating the entry.
func markUnsold(st *league.AuctionState, req Request, now string) error {
	fullName := trim(req.FullName)
	if fullName == "" {
		return invalidf("fullName required")
	}
	key := league.NormalizeName(fullName)
	if _, sold := st.Sold[key]; sold {
		return conflictf("Player already sold")
	}
	for i := range st.Unsold {
		if league.NormalizeName(st.Unsold[i].FullName) == key {
			st.Unsold[i].Rounds++
			return nil
		}
	}
	st.Unsold = append(st.Unsold, league.UnsoldEntry{
		FullName: fullName,
		Time:     now,
		Rounds:   1,
	})
	return nil
}

func markUnassigned(st *league.AuctionState, req Request) error {
	fullName := trim(req.FullName)
	if fullName == "" {
		return invalidf("fullName required")
	}
	key := league.NormalizeName(fullName)
	for i := range st.Unsold {
		if league.NormalizeName(st.Unsold[i].FullName) == key {
			st.Unsold[i].Unassigned = true
			return nil
		}
	}
	return notFoundf("Player not in unsold queue")
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
