package scores

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FileLeaderboard stores records as "score,difficulty,timestamp" lines.
type FileLeaderboard struct {
	path string
	mu   sync.Mutex
}

func NewFileLeaderboard(path string) *FileLeaderboard {
	return &FileLeaderboard{path: path}
}

// Append adds one line to the end of the file, creating it if needed.
func (l *FileLeaderboard) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ensureDir(l.path); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open leaderboard: %w", err)
	}
	line := fmt.Sprintf("%d,%s,%s\n", rec.Score, rec.Difficulty, rec.Time.Format(TimeLayout))
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append leaderboard: %w", err)
	}
	return f.Close()
}

// Records reads every record in file order. Lines without exactly three
// fields are skipped; a line with an unreadable score or timestamp makes the
// whole file corrupt.
func (l *FileLeaderboard) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open leaderboard: %w", err)
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		parts := strings.Split(sc.Text(), ",")
		if len(parts) != 3 {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("leaderboard line %d: bad score: %w", n, err)
		}
		ts, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(parts[2]), time.Local)
		if err != nil {
			return nil, fmt.Errorf("leaderboard line %d: bad time: %w", n, err)
		}
		records = append(records, Record{Score: score, Difficulty: parts[1], Time: ts})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return records, nil
}
