package game_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/stackfall/game"
	"github.com/plus3/stackfall/piece"
)

type constRand piece.Type

func (r constRand) IntN(n int) int { return int(r) % n }

type recordedGame struct {
	score, high int
	difficulty  string
}

type fakeRecorder struct {
	mu    sync.Mutex
	high  int
	loads int
	games []recordedGame
}

func (r *fakeRecorder) LoadHighScore() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	return r.high
}

func (r *fakeRecorder) RecordGame(ctx context.Context, score, highScore int, difficulty string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		panic("RecordGame called without a deadline")
	}
	r.games = append(r.games, recordedGame{score, highScore, difficulty})
}

type eventLog struct {
	mu     sync.Mutex
	events []game.Event
}

func (l *eventLog) add(ev game.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []game.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]game.EventKind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func (l *eventLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

func newLoop(t *testing.T, rec game.Recorder) (*game.Loop, *eventLog) {
	t.Helper()
	loop := game.NewLoop(game.Options{Rand: constRand(piece.O), Recorder: rec})
	log := &eventLog{}
	loop.Subscribe(log.add)
	return loop, log
}

func TestNewLoop(t *testing.T) {
	t.Run("requires a random source", func(t *testing.T) {
		assert.Panics(t, func() { game.NewLoop(game.Options{}) })
	})

	t.Run("loads the persisted high score", func(t *testing.T) {
		rec := &fakeRecorder{high: 4200}
		loop, _ := newLoop(t, rec)

		snap := loop.Snapshot()
		assert.Equal(t, 4200, snap.HighScore)
		assert.Equal(t, 0, snap.Score)
		assert.Equal(t, 1, rec.loads)
	})
}

func TestLoopTick(t *testing.T) {
	t.Run("descent and lock", func(t *testing.T) {
		loop, log := newLoop(t, nil)

		res := loop.Tick()
		assert.True(t, res.Moved)
		assert.Equal(t, []game.EventKind{game.EventTick}, log.kinds())

		require.True(t, loop.Apply(game.HardDrop))
		log.reset()

		res = loop.Tick()
		assert.True(t, res.Locked)
		assert.False(t, res.GameOver)
		assert.Equal(t, []game.EventKind{game.EventLocked, game.EventTick}, log.kinds())

		snap := loop.Snapshot()
		assert.Equal(t, 1, snap.Locked)
		assert.Equal(t, 2, snap.Spawned[piece.O])
		assert.Equal(t, []int{0, 0, 0, 0, 4, 4, 0, 0, 0, 0}, snap.Grid()[19])
	})

	t.Run("clearing a row scores and speeds up", func(t *testing.T) {
		loop, log := newLoop(t, nil)
		loop.WithSession(func(s *game.Session) {
			for x := range 10 {
				if x != 4 && x != 5 {
					s.Board.Set(x, 19, 2)
				}
			}
			s.Progression.AddScore(4)
			s.Progression.AddScore(4)
		})
		loop.Apply(game.HardDrop)
		log.reset()

		res := loop.Tick()
		assert.Equal(t, 1, res.Cleared)
		assert.Equal(t, []game.EventKind{
			game.EventLocked, game.EventLinesCleared, game.EventLevelChanged, game.EventTick,
		}, log.kinds())

		snap := loop.Snapshot()
		assert.Equal(t, 1700, snap.Score)
		assert.Equal(t, 1700, snap.HighScore)
		assert.Equal(t, "Medium", snap.LevelName)
		assert.Equal(t, 1, snap.Lines)

		d, ok := loop.NextDelay()
		assert.True(t, ok)
		assert.Equal(t, 800*time.Millisecond, d)
	})

	t.Run("game over records the result once", func(t *testing.T) {
		rec := &fakeRecorder{high: 500}
		logger, hook := test.NewNullLogger()
		loop := game.NewLoop(game.Options{Rand: constRand(piece.O), Recorder: rec, Log: logger})
		log := &eventLog{}
		loop.Subscribe(log.add)

		loop.WithSession(func(s *game.Session) {
			s.Board.Set(4, 2, 1)
			s.Board.Set(5, 2, 1)
		})

		res := loop.Tick()
		assert.True(t, res.GameOver)
		assert.Contains(t, log.kinds(), game.EventGameOver)
		require.Len(t, rec.games, 1)
		assert.Equal(t, recordedGame{score: 0, high: 500, difficulty: "Easy"}, rec.games[0])

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "game over", entry.Message)
		assert.Equal(t, logrus.InfoLevel, entry.Level)

		res = loop.Tick()
		assert.True(t, res.Skipped)
		assert.False(t, loop.Apply(game.MoveLeft))
		assert.False(t, loop.Apply(game.Pause))
		assert.Len(t, rec.games, 1)

		_, ok := loop.NextDelay()
		assert.False(t, ok)
		assert.True(t, loop.Snapshot().Over)
	})
}

func TestLoopApply(t *testing.T) {
	t.Run("pause stops descent", func(t *testing.T) {
		loop, log := newLoop(t, nil)

		require.True(t, loop.Apply(game.Pause))
		_, ok := loop.NextDelay()
		assert.False(t, ok)
		assert.True(t, loop.Tick().Skipped)
		assert.False(t, loop.Apply(game.MoveRight))
		assert.True(t, loop.Snapshot().Paused)

		require.True(t, loop.Apply(game.Pause))
		d, ok := loop.NextDelay()
		assert.True(t, ok)
		assert.Equal(t, time.Second, d)
		assert.Equal(t, []game.EventKind{game.EventPaused, game.EventResumed}, log.kinds())
	})

	t.Run("manual difficulty changes the tick interval", func(t *testing.T) {
		loop, log := newLoop(t, nil)

		assert.False(t, loop.Apply(game.DifficultyDown))
		assert.True(t, loop.Apply(game.DifficultyUp))

		d, _ := loop.NextDelay()
		assert.Equal(t, 800*time.Millisecond, d)
		assert.Equal(t, []game.EventKind{game.EventLevelChanged}, log.kinds())
	})

	t.Run("leaderboard request is forwarded", func(t *testing.T) {
		loop, log := newLoop(t, nil)

		assert.True(t, loop.Apply(game.Leaderboard))
		assert.Equal(t, []game.EventKind{game.EventLeaderboardRequested}, log.kinds())
	})

	t.Run("restart replaces the session", func(t *testing.T) {
		rec := &fakeRecorder{high: 100}
		loop, log := newLoop(t, rec)

		loop.Apply(game.DifficultyUp)
		loop.Apply(game.HardDrop)
		loop.Tick()
		loop.WithSession(func(s *game.Session) { s.Over = true })

		rec.high = 900
		require.True(t, loop.Apply(game.Restart))

		snap := loop.Snapshot()
		assert.False(t, snap.Over)
		assert.Equal(t, 900, snap.HighScore)
		assert.Equal(t, 0, snap.Level)
		assert.Equal(t, 0, snap.Locked)
		assert.Len(t, snap.Cells, 4, "only the new piece")
		assert.Equal(t, 2, rec.loads)
		assert.Equal(t, game.EventRestarted, log.kinds()[len(log.kinds())-1])
	})
}

func TestLoopRun(t *testing.T) {
	loop := game.NewLoop(game.Options{Rand: constRand(piece.I)})
	for range 4 {
		loop.Apply(game.DifficultyUp)
	}

	ticks := make(chan struct{}, 64)
	loop.Subscribe(func(ev game.Event) {
		if ev.Kind == game.EventTick {
			select {
			case ticks <- struct{}{}:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick within two seconds at the fastest level")
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
