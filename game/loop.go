package game

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plus3/stackfall/piece"
	"github.com/plus3/stackfall/progression"
)

// Recorder persists finished games. scores.Keeper implements it.
type Recorder interface {
	LoadHighScore() int
	RecordGame(ctx context.Context, score, highScore int, difficulty string)
}

// Options configures a Loop.
type Options struct {
	// Rand picks spawned pieces. Required.
	Rand piece.Rand
	// Recorder loads the high score on (re)start and saves results on game
	// over. Nil disables persistence.
	Recorder Recorder
	Log      logrus.FieldLogger
	// RecordTimeout bounds one RecordGame call. Defaults to five seconds.
	RecordTimeout time.Duration
}

// TickResult summarizes one tick.
type TickResult struct {
	Skipped  bool
	Moved    bool
	Locked   bool
	Cleared  int
	GameOver bool
}

// Loop owns the active session. Ticks and player commands are serialized on
// its mutex; listeners and persistence run after the mutex is released.
type Loop struct {
	mu        sync.Mutex
	session   *Session
	scheduler *Scheduler

	rand          piece.Rand
	recorder      Recorder
	recordTimeout time.Duration
	log           logrus.FieldLogger

	listeners []func(Event)
	rearm     chan struct{}
}

// NewLoop starts a fresh session.
func NewLoop(opts Options) *Loop {
	if opts.Rand == nil {
		panic("game: Options.Rand is required")
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	timeout := opts.RecordTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	l := &Loop{
		scheduler:     NewTickScheduler(),
		rand:          opts.Rand,
		recorder:      opts.Recorder,
		recordTimeout: timeout,
		log:           log,
		rearm:         make(chan struct{}, 1),
	}
	l.session = NewSession(l.rand, l.loadHighScore())
	return l
}

// Subscribe registers fn to receive every event. Listeners run on the
// goroutine that caused the event, outside the session lock.
func (l *Loop) Subscribe(fn func(Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Scheduler exposes the tick pipeline, mainly for its statistics.
func (l *Loop) Scheduler() *Scheduler {
	return l.scheduler
}

// Tick advances the session by one step of automatic descent.
func (l *Loop) Tick() TickResult {
	l.mu.Lock()
	frame := l.scheduler.Once(l.session)
	if !frame.Skipped {
		frame.Emit(Event{Kind: EventTick})
	}
	var fields logrus.Fields
	if frame.GameOver {
		l.queueRecord(frame.Commands, l.session)
		fields = logrus.Fields{
			"score": l.session.Progression.Score(),
			"level": l.session.Progression.LevelName(),
			"ticks": l.session.Stats.Ticks,
			"lines": l.session.Stats.Lines,
		}
	}
	l.queueEvents(frame.Commands, frame.Events)
	l.mu.Unlock()

	frame.Commands.Flush()

	if frame.GameOver {
		l.log.WithFields(fields).Info("game over")
	}

	return TickResult{
		Skipped:  frame.Skipped,
		Moved:    frame.Moved,
		Locked:   frame.Locked,
		Cleared:  frame.Cleared,
		GameOver: frame.GameOver,
	}
}

// Apply executes a player command and reports whether it changed anything.
// Every command except Restart is ignored once the game is over.
func (l *Loop) Apply(cmd Command) bool {
	if cmd == Restart {
		l.restart()
		return true
	}

	commands := newCommands()
	l.mu.Lock()
	events := l.session.apply(cmd)
	l.queueEvents(commands, events)
	l.mu.Unlock()

	commands.Flush()

	for _, ev := range events {
		switch ev.Kind {
		case EventPaused, EventResumed, EventLevelChanged:
			l.signalRearm()
		}
	}
	return len(events) > 0
}

func (l *Loop) restart() {
	high := l.loadHighScore()

	commands := newCommands()
	l.mu.Lock()
	l.session = NewSession(l.rand, high)
	l.queueEvents(commands, []Event{{Kind: EventRestarted, HighScore: high}})
	l.mu.Unlock()

	commands.Flush()
	l.signalRearm()
	l.log.WithField("high_score", high).Info("game restarted")
}

// NextDelay returns the interval to arm the descent timer with, or false
// when the session is paused or over and no tick should be scheduled.
func (l *Loop) NextDelay() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.session.Playing() {
		return 0, false
	}
	return l.session.Progression.Speed(), true
}

// Run drives automatic descent until ctx is done. The timer is re-armed with
// the current level's speed after every tick and whenever pause, restart or a
// manual level change is applied.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		if d, ok := l.NextDelay(); ok {
			timer.Reset(d)
		} else {
			timer.Stop()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.rearm:
		case <-timer.C:
			l.Tick()
		}
	}
}

// WithSession calls fn with the session locked. fn must not retain it.
func (l *Loop) WithSession(fn func(*Session)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.session)
}

func (l *Loop) signalRearm() {
	select {
	case l.rearm <- struct{}{}:
	default:
	}
}

func (l *Loop) loadHighScore() int {
	if l.recorder == nil {
		return 0
	}
	return l.recorder.LoadHighScore()
}

// queueRecord must be called with l.mu held.
func (l *Loop) queueRecord(commands *Commands, s *Session) {
	if l.recorder == nil {
		return
	}
	score := s.Progression.Score()
	high := s.Progression.HighScore()
	level := progression.LevelName(s.Progression.Level())

	commands.Defer(func() {
		ctx, cancel := context.WithTimeout(context.Background(), l.recordTimeout)
		defer cancel()
		l.recorder.RecordGame(ctx, score, high, level)
	})
}

// queueEvents must be called with l.mu held.
func (l *Loop) queueEvents(commands *Commands, events []Event) {
	if len(l.listeners) == 0 {
		return
	}
	listeners := append([]func(Event){}, l.listeners...)
	for _, ev := range events {
		commands.Defer(func() {
			for _, fn := range listeners {
				fn(ev)
			}
		})
	}
}
