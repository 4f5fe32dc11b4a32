package game

// System is one step of a tick. Systems run in registration order against the
// same Frame; later systems read what earlier ones recorded on it.
type System interface {
	Execute(frame *Frame)
}

// Frame is the per-tick context handed to every system.
type Frame struct {
	Session  *Session
	Commands *Commands
	Events   []Event

	// Skipped is set when the session is paused or over; no system acts.
	Skipped bool
	// Moved is set when the piece fell one row.
	Moved bool
	// Locked is set when the piece came to rest and was written to the board.
	Locked bool
	// Cleared is the number of rows removed after locking.
	Cleared  int
	GameOver bool
}

func newFrame(s *Session) *Frame {
	return &Frame{
		Session:  s,
		Commands: newCommands(),
	}
}

// Emit records an event for delivery once the frame is flushed.
func (f *Frame) Emit(ev Event) {
	f.Events = append(f.Events, ev)
}
