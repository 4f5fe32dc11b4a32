// Package board implements the playfield grid: collision testing, locking
// pieces into place and compacting full rows.
package board

import (
	"fmt"
	"iter"
	"strings"

	"github.com/plus3/stackfall/piece"
)

const (
	Width  = 10
	Height = 20
)

// Cell is a grid coordinate with its color id.
type Cell = piece.Cell

// Board is a Width x Height grid of locked cells. A cell is 0 when empty or
// holds the color id of the piece that was locked over it.
type Board struct {
	width  int
	height int
	cells  [][]int
}

// New creates an empty board of the given size.
func New(width, height int) *Board {
	cells := make([][]int, height)
	for y := range cells {
		cells[y] = make([]int, width)
	}
	return &Board{width: width, height: height, cells: cells}
}

// NewStandard creates an empty 10x20 board.
func NewStandard() *Board {
	return New(Width, Height)
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// At returns the cell value at (x, y). Coordinates outside the grid read as 0.
func (b *Board) At(x, y int) int {
	if !b.inside(x, y) {
		return 0
	}
	return b.cells[y][x]
}

// Set writes a cell value directly. It is meant for fixtures.
func (b *Board) Set(x, y, color int) {
	if b.inside(x, y) {
		b.cells[y][x] = color
	}
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// CanPlace reports whether p fits with its top-left corner at (x, y). Rows above
// the top edge count as free space.
func (b *Board) CanPlace(p *piece.Piece, x, y int) bool {
	for c := range p.CellsAt(x, y) {
		if c.X < 0 || c.X >= b.width || c.Y >= b.height {
			return false
		}
		if c.Y >= 0 && b.cells[c.Y][c.X] != 0 {
			return false
		}
	}
	return true
}

// TryMove translates p by (dx, dy) if the destination is free.
func (b *Board) TryMove(p *piece.Piece, dx, dy int) bool {
	if !b.CanPlace(p, p.X+dx, p.Y+dy) {
		return false
	}
	p.Translate(dx, dy)
	return true
}

// TryRotate turns p clockwise, reverting the rotation when the new shape does
// not fit at the current position.
func (b *Board) TryRotate(p *piece.Piece) bool {
	p.RotateClockwise()
	if b.CanPlace(p, p.X, p.Y) {
		return true
	}
	p.RotateCounterClockwise()
	return false
}

// HardDrop moves p down until it rests and returns the number of rows travelled.
func (b *Board) HardDrop(p *piece.Piece) int {
	rows := 0
	for b.TryMove(p, 0, 1) {
		rows++
	}
	return rows
}

// Lock writes p's color into the grid. Cells above the top edge are dropped.
func (b *Board) Lock(p *piece.Piece) {
	for c := range p.Cells() {
		if c.Y < 0 {
			continue
		}
		b.cells[c.Y][c.X] = c.Color
	}
}

// ClearFullRows removes every full row, shifting the rows above it down, and
// returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := b.height - 1; y >= 0; {
		if !b.rowFull(y) {
			y--
			continue
		}
		cleared++
		for k := y; k > 0; k-- {
			copy(b.cells[k], b.cells[k-1])
		}
		clear(b.cells[0])
		// the row shifted into y may be full as well
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for _, v := range b.cells[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

// IsTopBlocked reports whether a freshly spawned piece already collides.
func (b *Board) IsTopBlocked(p *piece.Piece) bool {
	return !b.CanPlace(p, p.X, p.Y)
}

// Cells yields every locked cell, top row first.
func (b *Board) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for y, row := range b.cells {
			for x, v := range row {
				if v == 0 {
					continue
				}
				if !yield(Cell{X: x, Y: y, Color: v}) {
					return
				}
			}
		}
	}
}

// Composite yields the locked cells followed by the visible cells of p.
// A nil piece yields only the locked cells.
func (b *Board) Composite(p *piece.Piece) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for c := range b.Cells() {
			if !yield(c) {
				return
			}
		}
		if p == nil {
			return
		}
		for c := range p.Cells() {
			if c.Y < 0 {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := New(b.width, b.height)
	for y := range b.cells {
		copy(c.cells[y], b.cells[y])
	}
	return c
}

// String renders the grid one line per row, '.' for empty cells and the color
// digit otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		for _, v := range row {
			if v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + v))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds a board from the String format. Blank lines are ignored and
// every row must have the same width.
func Parse(s string) (*Board, error) {
	var rows []string
	for line := range strings.Lines(s) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse board: no rows")
	}

	b := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.width {
			return nil, fmt.Errorf("parse board: row %d has width %d, want %d", y, len(row), b.width)
		}
		for x, ch := range []byte(row) {
			switch {
			case ch == '.':
			case ch >= '1' && ch <= '7':
				b.cells[y][x] = int(ch - '0')
			default:
				return nil, fmt.Errorf("parse board: invalid cell %q at %d,%d", ch, x, y)
			}
		}
	}
	return b, nil
}
