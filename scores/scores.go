// Package scores persists the high score and the leaderboard of finished games.
//
// Both stores are lenient readers: a missing file means "no prior data", and
// the Keeper turns unreadable or corrupt data into the same result after
// logging it.
package scores

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HighScoreStore keeps a single integer in a text file.
type HighScoreStore struct {
	path string
}

func NewHighScoreStore(path string) *HighScoreStore {
	return &HighScoreStore{path: path}
}

func (s *HighScoreStore) Path() string {
	return s.path
}

// Load reads the stored high score. A missing file yields 0 without error.
func (s *HighScoreStore) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse high score %q: %w", s.path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("parse high score %q: negative value %d", s.path, score)
	}
	return score, nil
}

// Save overwrites the stored high score.
func (s *HighScoreStore) Save(score int) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

// Leaderboard is an append-only log of finished games.
type Leaderboard interface {
	Append(ctx context.Context, rec Record) error
	Records(ctx context.Context) ([]Record, error)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
