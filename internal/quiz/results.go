package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rkcl/league-api/internal/league"
)

// ResultsStore appends scored submissions to one JSON file per quiz.
// The file is rewritten whole on every append, serialized by a mutex.
type ResultsStore struct {
	dir string
	mu  sync.Mutex
}

func NewResultsStore(dir string) *ResultsStore {
	return &ResultsStore{dir: dir}
}

func (r *ResultsStore) path(id string) (string, error) {
	if !idPattern.MatchString(id) {
		return "", ErrQuizNotFound
	}
	return filepath.Join(r.dir, id+".json"), nil
}

// List returns all results for a quiz, empty when none were recorded.
func (r *ResultsStore) List(id string) ([]league.QuizResult, error) {
	path, err := r.path(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return readResults(path)
}

// Append records one result.
func (r *ResultsStore) Append(id string, res league.QuizResult) error {
	path, err := r.path(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := readResults(path)
	if err != nil {
		return err
	}
	rows = append(rows, res)

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results for %s: %w", id, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results for %s: %w", id, err)
	}
	return nil
}

func readResults(path string) ([]league.QuizResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []league.QuizResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var rows []league.QuizResult
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing results %s: %w", path, err)
	}
	return rows, nil
}
