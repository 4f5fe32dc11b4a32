package game

// GravitySystem moves the active piece down one row.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *Frame) {
	session := frame.Session
	if !session.Playing() {
		frame.Skipped = true
		return
	}
	session.Stats.Ticks++
	frame.Moved = session.Board.TryMove(session.Piece, 0, 1)
}

// LockSystem commits a piece that could not fall, spawns the next one and
// ends the game when the new piece has no room.
type LockSystem struct{}

func (s *LockSystem) Execute(frame *Frame) {
	if frame.Skipped || frame.Moved {
		return
	}
	session := frame.Session

	session.Board.Lock(session.Piece)
	session.Stats.Locked++
	frame.Locked = true
	frame.Emit(Event{Kind: EventLocked})

	if session.spawn() {
		session.Over = true
		frame.GameOver = true
		frame.Emit(Event{
			Kind:      EventGameOver,
			Score:     session.Progression.Score(),
			HighScore: session.Progression.HighScore(),
			Level:     session.Progression.Level(),
		})
	}
}

// LineClearSystem removes full rows after a lock.
type LineClearSystem struct{}

func (s *LineClearSystem) Execute(frame *Frame) {
	if !frame.Locked || frame.GameOver {
		return
	}
	session := frame.Session

	frame.Cleared = session.Board.ClearFullRows()
	if frame.Cleared == 0 {
		return
	}
	session.Stats.recordClear(frame.Cleared)
	frame.Emit(Event{Kind: EventLinesCleared, Lines: frame.Cleared})
}

// ScoringSystem awards points for cleared rows and lets the score raise the
// difficulty. A manually chosen level stands until the next clear.
type ScoringSystem struct{}

func (s *ScoringSystem) Execute(frame *Frame) {
	if frame.Cleared == 0 {
		return
	}
	p := frame.Session.Progression
	before := p.Level()

	p.AddScore(frame.Cleared)
	p.AutoAdjustDifficulty(p.Score())

	if p.Level() != before {
		frame.Emit(Event{Kind: EventLevelChanged, Level: p.Level()})
	}
}

// registerTickSystems installs the standard tick pipeline.
func registerTickSystems(s *Scheduler) {
	s.Register(&GravitySystem{})
	s.Register(&LockSystem{})
	s.Register(&LineClearSystem{})
	s.Register(&ScoringSystem{})
}
