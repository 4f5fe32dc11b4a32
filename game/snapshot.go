package game

import (
	"image/color"
	"slices"
	"time"

	"github.com/plus3/stackfall/board"
	"github.com/plus3/stackfall/piece"
	"github.com/plus3/stackfall/progression"
)

// Snapshot is a read-only copy of a session for renderers. Cells holds the
// locked board with the falling piece composited on top, except once the game
// is over: the piece that failed to spawn overlaps locked cells and is left
// out.
type Snapshot struct {
	Width, Height int
	Cells         []board.Cell
	Piece         piece.Type

	Score     int
	HighScore int
	Level     int
	LevelName string
	Speed     time.Duration
	// NextLevelAt is the score that raises the level next, 0 at the top level.
	NextLevelAt int

	Paused bool
	Over   bool

	Lines   int
	Locked  int
	Ticks   int
	Spawned [piece.Count]int
}

// Snapshot copies the current session under the loop's lock.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Snapshot()
}

// Snapshot copies the session. The caller must hold whatever lock guards s.
func (s *Session) Snapshot() Snapshot {
	p := s.Progression
	falling := s.Piece
	if s.Over {
		falling = nil
	}
	next := 0
	if p.Level() < progression.MaxLevel {
		next = progression.Threshold(p.Level() + 1)
	}
	return Snapshot{
		Width:       s.Board.Width(),
		Height:      s.Board.Height(),
		Cells:       slices.Collect(s.Board.Composite(falling)),
		Piece:       s.Piece.Type,
		Score:       p.Score(),
		HighScore:   p.HighScore(),
		Level:       p.Level(),
		LevelName:   p.LevelName(),
		Speed:       p.Speed(),
		NextLevelAt: next,
		Paused:      s.Paused,
		Over:        s.Over,
		Lines:       s.Stats.Lines,
		Locked:      s.Stats.Locked,
		Ticks:       s.Stats.Ticks,
		Spawned:     s.Stats.SpawnCounts(),
	}
}

// Grid expands Cells into rows of color ids, 0 for empty.
func (s Snapshot) Grid() [][]int {
	grid := make([][]int, s.Height)
	for y := range grid {
		grid[y] = make([]int, s.Width)
	}
	for _, c := range s.Cells {
		if c.Y >= 0 && c.Y < s.Height && c.X >= 0 && c.X < s.Width {
			grid[c.Y][c.X] = c.Color
		}
	}
	return grid
}

// Palette maps color ids 1..7 to display colors, in piece declaration order.
// Index 0 is the empty cell.
var Palette = [piece.Count + 1]color.RGBA{
	{0x10, 0x10, 0x18, 0xff},
	{0x00, 0xf0, 0xf0, 0xff}, // I
	{0x00, 0x00, 0xf0, 0xff}, // J
	{0xf0, 0xa0, 0x00, 0xff}, // L
	{0xf0, 0xf0, 0x00, 0xff}, // O
	{0x00, 0xf0, 0x00, 0xff}, // S
	{0xf0, 0x00, 0x00, 0xff}, // Z
	{0xa0, 0x00, 0xf0, 0xff}, // T
}

// ColorOf returns the palette entry for a color id, or the empty color when
// id is out of range.
func ColorOf(id int) color.RGBA {
	if id < 0 || id >= len(Palette) {
		return Palette[0]
	}
	return Palette[id]
}
