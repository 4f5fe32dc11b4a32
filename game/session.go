// Package game drives a falling piece against the board. A Session holds the
// state of one game; systems registered on a Scheduler advance it one tick at
// a time and a Loop serializes ticks with player input.
package game

import (
	"github.com/plus3/stackfall/board"
	"github.com/plus3/stackfall/piece"
	"github.com/plus3/stackfall/progression"
)

// Session is the complete state of one game. It is replaced wholesale on
// restart and must only be mutated from one goroutine at a time.
type Session struct {
	Board       *board.Board
	Piece       *piece.Piece
	Progression *progression.Progression
	Stats       *Stats
	Over        bool
	Paused      bool

	rand piece.Rand
}

// NewSession starts a game on an empty standard board with the given
// persisted high score.
func NewSession(r piece.Rand, highScore int) *Session {
	s := &Session{
		Board:       board.NewStandard(),
		Progression: progression.New(highScore),
		Stats:       NewStats(),
		rand:        r,
	}
	s.spawn()
	return s
}

// spawn replaces the active piece and reports whether it collides already.
func (s *Session) spawn() bool {
	s.Piece = piece.Spawn(s.rand, s.Board.Width())
	s.Stats.recordSpawn(s.Piece.Type)
	return s.Board.IsTopBlocked(s.Piece)
}

// Playing reports whether the session accepts ticks and moves.
func (s *Session) Playing() bool {
	return !s.Over && !s.Paused
}

// apply executes a player command synchronously. Restart is handled by the
// Loop. It returns the events the command produced.
func (s *Session) apply(cmd Command) []Event {
	if s.Over {
		return nil
	}

	switch cmd {
	case Pause:
		s.Paused = !s.Paused
		if s.Paused {
			return []Event{{Kind: EventPaused}}
		}
		return []Event{{Kind: EventResumed}}
	case Leaderboard:
		return []Event{{Kind: EventLeaderboardRequested}}
	}

	if s.Paused {
		return nil
	}

	b, p := s.Board, s.Piece
	moved := false
	switch cmd {
	case MoveLeft:
		moved = b.TryMove(p, -1, 0)
	case MoveRight:
		moved = b.TryMove(p, 1, 0)
	case SoftDrop:
		moved = b.TryMove(p, 0, 1)
	case Rotate:
		moved = b.TryRotate(p)
	case HardDrop:
		moved = b.HardDrop(p) > 0
	case DifficultyUp, DifficultyDown:
		before := s.Progression.Level()
		if cmd == DifficultyUp {
			s.Progression.Increase()
		} else {
			s.Progression.Decrease()
		}
		if s.Progression.Level() != before {
			return []Event{{Kind: EventLevelChanged, Level: s.Progression.Level()}}
		}
		return nil
	}

	if moved {
		return []Event{{Kind: EventMoved}}
	}
	return nil
}
