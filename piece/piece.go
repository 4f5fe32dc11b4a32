// Package piece holds the tetromino catalogue and the state of the falling piece.
package piece

import (
	"iter"
)

// Type identifies one of the seven tetromino variants. The zero value is I.
type Type int

const (
	I Type = iota
	J
	L
	O
	S
	Z
	T
)

// Count is the number of variants.
const Count = 7

type shapeDef struct {
	name  string
	shape [][]int
}

var shapes = [Count]shapeDef{
	I: {"I", [][]int{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}},
	J: {"J", [][]int{
		{2, 0, 0},
		{2, 2, 2},
		{0, 0, 0},
	}},
	L: {"L", [][]int{
		{0, 0, 3},
		{3, 3, 3},
		{0, 0, 0},
	}},
	O: {"O", [][]int{
		{4, 4},
		{4, 4},
	}},
	S: {"S", [][]int{
		{0, 5, 5},
		{5, 5, 0},
		{0, 0, 0},
	}},
	Z: {"Z", [][]int{
		{6, 6, 0},
		{0, 6, 6},
		{0, 0, 0},
	}},
	T: {"T", [][]int{
		{0, 7, 0},
		{7, 7, 7},
		{0, 0, 0},
	}},
}

// Types returns every variant in declaration order.
func Types() []Type {
	return []Type{I, J, L, O, S, Z, T}
}

func (t Type) String() string {
	if !t.Valid() {
		return "?"
	}
	return shapes[t].name
}

// Valid reports whether t is one of the seven variants.
func (t Type) Valid() bool {
	return t >= 0 && t < Count
}

// Color is the cell value written by pieces of this type, 1 through 7.
func (t Type) Color() int {
	return int(t) + 1
}

// Size is the side length of the variant's square shape matrix.
func (t Type) Size() int {
	return len(shapes[t].shape)
}

// Shape returns a copy of the canonical (unrotated) shape matrix.
func (t Type) Shape() [][]int {
	return cloneShape(shapes[t].shape)
}

// Rand is the subset of *rand.Rand used to pick variants.
type Rand interface {
	IntN(n int) int
}

// Cell is an absolute grid coordinate carrying a color.
type Cell struct {
	X, Y  int
	Color int
}

// Piece is the currently falling tetromino. Its shape is always square and
// keeps the variant's side length across rotations.
type Piece struct {
	Type  Type
	Shape [][]int
	X, Y  int
	color int
}

// New creates a piece of type t with its shape's top-left corner at (x, y).
func New(t Type, x, y int) *Piece {
	return &Piece{
		Type:  t,
		Shape: t.Shape(),
		X:     x,
		Y:     y,
		color: t.Color(),
	}
}

// Spawn picks a uniformly random variant and places it at the top centre of a
// board boardWidth columns wide. The placement is not validated.
func Spawn(r Rand, boardWidth int) *Piece {
	return New(Type(r.IntN(Count)), boardWidth/2-1, 0)
}

// Color returns the piece's color id. It never changes for the life of the piece.
func (p *Piece) Color() int {
	return p.color
}

// RotateClockwise turns the shape 90 degrees clockwise in place.
func (p *Piece) RotateClockwise() {
	n := len(p.Shape)
	rotated := newShape(n)
	for i := range n {
		for j := range n {
			rotated[j][n-1-i] = p.Shape[i][j]
		}
	}
	p.Shape = rotated
}

// RotateCounterClockwise is the exact inverse of RotateClockwise.
func (p *Piece) RotateCounterClockwise() {
	n := len(p.Shape)
	rotated := newShape(n)
	for i := range n {
		for j := range n {
			rotated[n-1-j][i] = p.Shape[i][j]
		}
	}
	p.Shape = rotated
}

// Translate moves the piece by (dx, dy) without validating the result.
func (p *Piece) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Cells yields the absolute coordinates of every occupied shape cell,
// including cells above the visible top (negative Y).
func (p *Piece) Cells() iter.Seq[Cell] {
	return p.CellsAt(p.X, p.Y)
}

// CellsAt yields the occupied cells as if the piece were positioned at (x, y).
func (p *Piece) CellsAt(x, y int) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, row := range p.Shape {
			for j, v := range row {
				if v == 0 {
					continue
				}
				if !yield(Cell{X: x + j, Y: y + i, Color: p.color}) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	c := *p
	c.Shape = cloneShape(p.Shape)
	return &c
}

func newShape(n int) [][]int {
	s := make([][]int, n)
	for i := range s {
		s[i] = make([]int, n)
	}
	return s
}

func cloneShape(src [][]int) [][]int {
	dst := make([][]int, len(src))
	for i := range src {
		dst[i] = make([]int, len(src[i]))
		copy(dst[i], src[i])
	}
	return dst
}
