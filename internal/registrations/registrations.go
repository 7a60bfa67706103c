// Package registrations fetches the player roster from a published CSV
// export and enriches it with auction-era attributes from a secondary
// local CSV. The parsed roster is cached in memory until a caller asks
// for a refresh.
package registrations

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rkcl/league-api/internal/league"
)

// ErrNoSource is returned when no CSV URL is configured.
var ErrNoSource = errors.New("no registrations data source configured; set SHEETS_CSV_URL")

// Service fetches and caches the roster.
type Service struct {
	csvURL     string
	auctionCSV string
	client     *http.Client

	mu          sync.RWMutex
	cached      []league.Registration
	loaded      bool
	lastUpdated time.Time
}

func NewService(csvURL, auctionCSV string) *Service {
	return &Service{
		csvURL:     csvURL,
		auctionCSV: auctionCSV,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// List returns the roster. cached reports whether the response was
// served from memory; refresh forces a refetch.
func (s *Service) List(ctx context.Context, refresh bool) (rows []league.Registration, cached bool, err error) {
	if !refresh {
		s.mu.RLock()
		if s.loaded {
			rows = s.cached
			s.mu.RUnlock()
			return rows, true, nil
		}
		s.mu.RUnlock()
	}

	rows, err = s.fetch(ctx)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.cached = rows
	s.loaded = true
	s.lastUpdated = time.Now()
	s.mu.Unlock()
	return rows, false, nil
}

// LastUpdated reports when the cache was last filled; zero before the
// first successful fetch.
func (s *Service) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

func (s *Service) fetch(ctx context.Context) ([]league.Registration, error) {
	if s.csvURL == "" {
		return nil, ErrNoSource
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.csvURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building roster request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching roster CSV: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching roster CSV: %s", resp.Status)
	}

	rows, err := parseRoster(csv.NewReader(resp.Body))
	if err != nil {
		return nil, err
	}
	if err := s.enrich(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Header aliases seen across the registration form's revisions.
var headerAliases = map[string][]string{
	"timestamp":    {"timestamp"},
	"fullName":     {"your full name", "full name", "name"},
	"age":          {"your age", "age"},
	"contact":      {"your contact no.", "contact", "phone", "mobile"},
	"playingStyle": {"your playing style", "playing style", "style"},
	"tshirtSize":   {"your t-shirt size", "t-shirt size", "tshirt size", "size"},
	"photoUrl":     {"your photo", "photo", "image", "photo url"},
}

func parseRoster(r *csv.Reader) ([]league.Registration, error) {
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing roster CSV: %w", err)
	}
	if len(records) == 0 {
		return []league.Registration{}, nil
	}

	// Map each wanted field to its column index via the alias table.
	cols := make(map[string]int)
	for i, h := range records[0] {
		norm := strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range headerAliases {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, a := range aliases {
				if norm == a {
					cols[field] = i
				}
			}
		}
	}

	cell := func(row []string, field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]league.Registration, 0, len(records)-1)
	for _, rec := range records[1:] {
		fullName := cell(rec, "fullName")
		if fullName == "" {
			continue
		}
		rows = append(rows, league.Registration{
			Timestamp:    cell(rec, "timestamp"),
			FullName:     fullName,
			Age:          normalizeAge(cell(rec, "age")),
			Contact:      cell(rec, "contact"),
			PlayingStyle: cell(rec, "playingStyle"),
			TshirtSize:   cell(rec, "tshirtSize"),
			PhotoURL:     cell(rec, "photoUrl"),
		})
	}
	return rows, nil
}

var ageDigits = regexp.MustCompile(`\d+`)

// normalizeAge extracts the first run of digits and keeps it only when
// it is a plausible playing age; everything else becomes "NA".
func normalizeAge(raw string) string {
	digits := ageDigits.FindString(raw)
	if digits == "" {
		return "NA"
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 15 || n > 50 {
		return "NA"
	}
	return strconv.Itoa(n)
}

// enrich joins auction attributes (base price, category) onto the
// roster by normalized player name. A missing attributes file is not an
// error — early in the season it simply doesn't exist yet.
func (s *Service) enrich(rows []league.Registration) error {
	if s.auctionCSV == "" {
		return nil
	}
	f, err := os.Open(s.auctionCSV)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening auction attributes CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parsing auction attributes CSV: %w", err)
	}
	if len(records) < 2 {
		return nil
	}

	nameCol, priceCol, catCol := -1, -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "fullname", "full name", "name":
			nameCol = i
		case "baseprice", "base price":
			priceCol = i
		case "category":
			catCol = i
		}
	}
	if nameCol < 0 {
		return nil
	}

	type attrs struct {
		basePrice int
		category  string
	}
	byName := make(map[string]attrs, len(records)-1)
	for _, rec := range records[1:] {
		if nameCol >= len(rec) {
			continue
		}
		a := attrs{}
		if priceCol >= 0 && priceCol < len(rec) {
			a.basePrice, _ = strconv.Atoi(strings.TrimSpace(rec[priceCol]))
		}
		if catCol >= 0 && catCol < len(rec) {
			a.category = strings.TrimSpace(rec[catCol])
		}
		byName[league.NormalizeName(rec[nameCol])] = a
	}

	for i := range rows {
		if a, ok := byName[league.NormalizeName(rows[i].FullName)]; ok {
			rows[i].BasePrice = a.basePrice
			rows[i].Category = a.category
		}
	}
	return nil
}
