package main

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/plus3/stackfall/game"
	"github.com/plus3/stackfall/scores"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 24)
	t.Cleanup(screen.Fini)

	dir := t.TempDir()
	logger, _ := test.NewNullLogger()
	keeper := scores.NewKeeper(
		scores.NewHighScoreStore(filepath.Join(dir, "highscore.txt")),
		scores.NewFileLeaderboard(filepath.Join(dir, "leaderboard.txt")),
		logger,
	)
	loop := game.NewLoop(game.Options{
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Recorder: keeper,
		Log:      logger,
	})
	return newApp(screen, loop, keeper, logger, language.English)
}

func screenText(s tcell.Screen) string {
	w, h := s.Size()
	var b strings.Builder
	for y := range h {
		for x := range w {
			r, _, _, _ := s.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestAppGameView(t *testing.T) {
	a := newTestApp(t)

	a.draw()
	text := screenText(a.screen)
	assert.Contains(t, text, "Score")
	assert.Contains(t, text, "Easy")
	assert.Contains(t, text, "Next level at")
	assert.Contains(t, text, "1,000")
	assert.NotContains(t, text, "PAUSED")

	assert.True(t, a.handle(runeKey('p')))
	a.draw()
	assert.Contains(t, screenText(a.screen), "PAUSED")

	assert.True(t, a.handle(runeKey('p')))
	assert.True(t, a.handle(runeKey('+')))
	a.draw()
	assert.Contains(t, screenText(a.screen), "Medium")

	assert.False(t, a.handle(runeKey('q')))
}

func TestAppHardDropRedraws(t *testing.T) {
	a := newTestApp(t)

	assert.True(t, a.handle(runeKey(' ')))
	select {
	case <-a.redraw:
	default:
		t.Fatal("hard drop did not request a redraw")
	}
}

func TestAppLeaderboard(t *testing.T) {
	t.Run("opening pauses and closing resumes", func(t *testing.T) {
		a := newTestApp(t)

		require.True(t, a.handle(runeKey('b')))
		assert.Equal(t, viewLeaderboard, a.view)
		assert.True(t, a.loop.Snapshot().Paused)

		a.draw()
		text := screenText(a.screen)
		assert.Contains(t, text, "Leaderboard: all")
		assert.Contains(t, text, "no games recorded yet")

		require.True(t, a.handle(specialKey(tcell.KeyEscape)))
		assert.Equal(t, viewGame, a.view)
		assert.False(t, a.loop.Snapshot().Paused)
	})

	t.Run("stays paused when opened from pause", func(t *testing.T) {
		a := newTestApp(t)

		a.handle(runeKey('p'))
		a.handle(runeKey('b'))
		require.Equal(t, viewLeaderboard, a.view)
		a.handle(runeKey('b'))

		assert.Equal(t, viewGame, a.view)
		assert.True(t, a.loop.Snapshot().Paused)
	})

	t.Run("filters cycle through difficulties", func(t *testing.T) {
		a := newTestApp(t)
		ctx := context.Background()
		a.keeper.RecordGame(ctx, 2500, 2500, "Hard")
		a.keeper.RecordGame(ctx, 1800, 2500, "Easy")

		a.handle(runeKey('b'))
		require.Len(t, a.records, 2)
		assert.Equal(t, 2500, a.records[0].Score)

		a.draw()
		assert.Contains(t, screenText(a.screen), "2,500")

		a.handle(specialKey(tcell.KeyTab))
		assert.Equal(t, "Easy", a.filterName())
		require.Len(t, a.records, 1)
		assert.Equal(t, 1800, a.records[0].Score)

		a.handle(specialKey(tcell.KeyBacktab))
		a.handle(specialKey(tcell.KeyBacktab))
		assert.Equal(t, "Master", a.filterName())
		assert.Empty(t, a.records)
	})

	t.Run("quit from the table", func(t *testing.T) {
		a := newTestApp(t)
		a.handle(runeKey('b'))
		assert.False(t, a.handle(runeKey('q')))
	})
}

func TestAppRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAppRunWaitsForLoop(t *testing.T) {
	a := newTestApp(t)
	var stopped atomic.Bool
	a.runLoop = func(ctx context.Context) error {
		<-ctx.Done()
		// Late enough that run would already have returned without waiting.
		time.Sleep(20 * time.Millisecond)
		stopped.Store(true)
		return ctx.Err()
	}

	a.screen.(tcell.SimulationScreen).InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, a.run(context.Background()))
	assert.True(t, stopped.Load(), "loop goroutine finished before run returned")
}
