package board_test

import (
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/plus3/stackfall/board"
	"github.com/plus3/stackfall/piece"
)

func loadArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	ar, err := txtar.ParseFile("testdata/" + name)
	require.NoError(t, err)

	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}
	return files
}

func mustParse(t *testing.T, s string) *board.Board {
	t.Helper()
	b, err := board.Parse(s)
	require.NoError(t, err)
	return b
}

func typeByName(t *testing.T, name string) piece.Type {
	t.Helper()
	for _, typ := range piece.Types() {
		if typ.String() == name {
			return typ
		}
	}
	t.Fatalf("unknown piece type %q", name)
	return 0
}

func TestCanPlace(t *testing.T) {
	files := loadArchive(t, "collision.txtar")
	b := mustParse(t, files["board"])

	for line := range strings.Lines(files["probe"]) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		require.Len(t, fields, 5, line)

		t.Run(strings.Join(fields, "_"), func(t *testing.T) {
			x, _ := strconv.Atoi(fields[1])
			y, _ := strconv.Atoi(fields[2])
			turns, _ := strconv.Atoi(fields[3])
			want, _ := strconv.ParseBool(fields[4])

			p := piece.New(typeByName(t, fields[0]), 0, 0)
			for range turns {
				p.RotateClockwise()
			}
			assert.Equal(t, want, b.CanPlace(p, x, y))
		})
	}
}

func TestCanPlaceMatchesCellRule(t *testing.T) {
	b := board.NewStandard()
	for x := range 10 {
		b.Set(x, 19, 1)
	}
	b.Set(4, 10, 3)

	for _, typ := range piece.Types() {
		p := piece.New(typ, 0, 0)
		for x := -4; x <= 11; x++ {
			for y := -4; y <= 21; y++ {
				want := true
				for c := range p.CellsAt(x, y) {
					if c.X < 0 || c.X >= 10 || c.Y >= 20 || (c.Y >= 0 && b.At(c.X, c.Y) != 0) {
						want = false
					}
				}
				assert.Equal(t, want, b.CanPlace(p, x, y), "%s at %d,%d", typ, x, y)
			}
		}
	}
}

func TestTryMove(t *testing.T) {
	b := board.NewStandard()
	p := piece.New(piece.O, 0, 0)

	assert.False(t, b.TryMove(p, -1, 0))
	assert.Equal(t, 0, p.X)

	assert.True(t, b.TryMove(p, 1, 0))
	assert.True(t, b.TryMove(p, 0, 1))
	assert.Equal(t, 1, p.X)
	assert.Equal(t, 1, p.Y)

	b.Set(1, 3, 5)
	assert.False(t, b.TryMove(p, 0, 1))
	assert.Equal(t, 1, p.Y)
}

func TestTryRotate(t *testing.T) {
	t.Run("rotates when free", func(t *testing.T) {
		b := board.NewStandard()
		p := piece.New(piece.T, 3, 5)
		assert.True(t, b.TryRotate(p))

		want := piece.New(piece.T, 3, 5)
		want.RotateClockwise()
		assert.Equal(t, want.Shape, p.Shape)
	})

	t.Run("reverts without kicking", func(t *testing.T) {
		b := board.NewStandard()
		p := piece.New(piece.I, 0, 5)
		p.RotateClockwise()
		// vertical I hugging the left wall cannot turn back to horizontal
		p.Translate(-2, 0)
		before := p.Clone()

		assert.False(t, b.TryRotate(p))
		assert.Equal(t, before.Shape, p.Shape)
		assert.Equal(t, before.X, p.X)
		assert.Equal(t, before.Y, p.Y)
	})

	t.Run("blocked by locked cells", func(t *testing.T) {
		b := board.NewStandard()
		p := piece.New(piece.J, 3, 5)
		b.Set(5, 5, 1)
		before := p.Clone()

		assert.False(t, b.TryRotate(p))
		assert.Equal(t, before.Shape, p.Shape)
	})
}

func TestHardDrop(t *testing.T) {
	for _, typ := range piece.Types() {
		t.Run(typ.String(), func(t *testing.T) {
			b := board.NewStandard()
			p := piece.New(typ, 4, 0)
			b.HardDrop(p)

			lowest := -1
			for c := range p.Cells() {
				lowest = max(lowest, c.Y)
			}
			assert.Equal(t, 19, lowest)
			assert.False(t, b.CanPlace(p, p.X, p.Y+1))
		})
	}

	t.Run("returns rows travelled", func(t *testing.T) {
		b := board.NewStandard()
		p := piece.New(piece.O, 4, 0)
		assert.Equal(t, 18, b.HardDrop(p))
		assert.Equal(t, 0, b.HardDrop(p))
	})
}

func TestLock(t *testing.T) {
	t.Run("writes color", func(t *testing.T) {
		b := board.NewStandard()
		p := piece.New(piece.S, 0, 18)
		b.Lock(p)

		assert.Equal(t, 5, b.At(1, 18))
		assert.Equal(t, 5, b.At(2, 18))
		assert.Equal(t, 5, b.At(0, 19))
		assert.Equal(t, 5, b.At(1, 19))
		assert.Len(t, slices.Collect(b.Cells()), 4)
	})

	t.Run("drops cells above the top", func(t *testing.T) {
		b := board.NewStandard()
		p := piece.New(piece.I, 2, 0)
		p.RotateClockwise()
		p.Translate(0, -2)
		b.Lock(p)

		cells := slices.Collect(b.Cells())
		assert.Len(t, cells, 2)
		for _, c := range cells {
			assert.GreaterOrEqual(t, c.Y, 0)
			assert.Equal(t, 1, c.Color)
		}
	})
}

func TestClearFullRows(t *testing.T) {
	files := loadArchive(t, "clear.txtar")

	for _, name := range []string{"nothing-full", "single", "split", "cascade"} {
		t.Run(name, func(t *testing.T) {
			b := mustParse(t, files[name+".before"])
			want := mustParse(t, files[name+".after"])
			cleared, err := strconv.Atoi(strings.TrimSpace(files[name+".cleared"]))
			require.NoError(t, err)

			assert.Equal(t, cleared, b.ClearFullRows())
			assert.Equal(t, want.String(), b.String())
		})
	}

	t.Run("two bottom rows of a standard board", func(t *testing.T) {
		b := board.NewStandard()
		for x := range 10 {
			b.Set(x, 18, 2)
			b.Set(x, 19, 3)
		}
		for y := range 18 {
			b.Set(y%10, y, 7)
		}
		before := b.Clone()

		assert.Equal(t, 2, b.ClearFullRows())
		for y := range 18 {
			for x := range 10 {
				assert.Equal(t, before.At(x, y), b.At(x, y+2), "%d,%d", x, y)
			}
		}
		for x := range 10 {
			assert.Zero(t, b.At(x, 0))
			assert.Zero(t, b.At(x, 1))
		}
	})
}

func TestIsTopBlocked(t *testing.T) {
	b := board.NewStandard()
	p := piece.New(piece.O, 4, 0)
	assert.False(t, b.IsTopBlocked(p))

	b.Set(5, 1, 6)
	assert.True(t, b.IsTopBlocked(p))
}

func TestComposite(t *testing.T) {
	b := board.NewStandard()
	b.Set(0, 19, 4)
	p := piece.New(piece.I, 3, -1)

	cells := slices.Collect(b.Composite(p))
	assert.ElementsMatch(t, []board.Cell{
		{X: 0, Y: 19, Color: 4},
		{X: 3, Y: 0, Color: 1},
		{X: 4, Y: 0, Color: 1},
		{X: 5, Y: 0, Color: 1},
		{X: 6, Y: 0, Color: 1},
	}, cells)

	assert.Len(t, slices.Collect(b.Composite(nil)), 1)
}

func TestParse(t *testing.T) {
	_, err := board.Parse("")
	assert.Error(t, err)

	_, err = board.Parse("...\n....\n")
	assert.Error(t, err)

	_, err = board.Parse("..x\n")
	assert.Error(t, err)

	b, err := board.Parse("\n.1.\n7..\n")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.Equal(t, ".1.\n7..\n", b.String())
}
