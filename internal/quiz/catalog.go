// Package quiz implements the quiz system: a file-sourced catalog,
// weekly play windows with a KV activation override, scored submissions
// with per-phone idempotence, and a redacted leaderboard.
package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rkcl/league-api/internal/league"
)

// ErrQuizNotFound is returned for unknown or malformed quiz ids.
var ErrQuizNotFound = errors.New("quiz not found")

// Quiz ids come from URL paths; anything outside this set is rejected
// before touching the filesystem.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// IndexEntry is one row of the public quiz index. No answers, no
// questions — just enough to render the listing page.
type IndexEntry struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Catalog reads quiz definitions from a directory of JSON files:
// index.json plus one {id}.json per quiz.
type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

func (c *Catalog) Index() ([]IndexEntry, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if err != nil {
		return nil, fmt.Errorf("reading quiz index: %w", err)
	}
	var entries []IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing quiz index: %w", err)
	}
	return entries, nil
}

// Load reads a full quiz definition, answers included. Callers are
// responsible for redacting answers before anything reaches a client.
func (c *Catalog) Load(id string) (*league.Quiz, error) {
	if !idPattern.MatchString(id) {
		return nil, ErrQuizNotFound
	}
	data, err := os.ReadFile(filepath.Join(c.dir, id+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading quiz %s: %w", id, err)
	}

	var q league.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parsing quiz %s: %w", id, err)
	}
	if q.ID == "" {
		q.ID = id
	}
	return &q, nil
}
