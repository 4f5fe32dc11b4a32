package game

import (
	"reflect"
	"time"
)

// PipelineStats summarizes the ticks a Scheduler has run.
type PipelineStats struct {
	Ticks int64
	// Skipped counts ticks that found the session paused or over.
	Skipped int64
	Locked  int64
	Cleared int64
	Steps   []StepStats
}

// Acting is the number of ticks that advanced the game.
func (p *PipelineStats) Acting() int64 {
	return p.Ticks - p.Skipped
}

// StepStats describes one system of the pipeline. A run counts as Acted when
// the system changed the frame, and Events counts what it emitted.
type StepStats struct {
	Name   string
	Runs   int64
	Acted  int64
	Events int64

	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// Idle is the number of runs that left the frame untouched.
func (s StepStats) Idle() int64 {
	return s.Runs - s.Acted
}

type stepCounters struct {
	name          string
	runs          int64
	acted         int64
	events        int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

// frameMark is the part of a frame a system can change.
type frameMark struct {
	skipped, moved, locked, over bool
	cleared, events              int
}

func markFrame(f *Frame) frameMark {
	return frameMark{
		skipped: f.Skipped,
		moved:   f.Moved,
		locked:  f.Locked,
		over:    f.GameOver,
		cleared: f.Cleared,
		events:  len(f.Events),
	}
}

// Scheduler runs the registered systems in order, once per tick.
type Scheduler struct {
	systems []System
	steps   []*stepCounters

	ticks, skipped, locked, cleared int64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems: make([]System, 0),
	}
}

// NewTickScheduler creates a scheduler with the standard tick pipeline:
// gravity, lock, line clear and scoring.
func NewTickScheduler() *Scheduler {
	s := NewScheduler()
	registerTickSystems(s)
	return s
}

// Register appends a system to the pipeline.
func (s *Scheduler) Register(system System) {
	if system == nil {
		panic("cannot register a nil system")
	}
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.steps = append(s.steps, &stepCounters{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes every system against session and returns the frame. The
// frame's commands are not flushed.
func (s *Scheduler) Once(session *Session) *Frame {
	frame := newFrame(session)

	for i, system := range s.systems {
		before := markFrame(frame)
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)
		after := markFrame(frame)

		step := s.steps[i]
		step.runs++
		if after != before {
			step.acted++
		}
		step.events += int64(after.events - before.events)
		step.lastDuration = duration
		step.totalDuration += duration
		step.minDuration = min(step.minDuration, duration)
		step.maxDuration = max(step.maxDuration, duration)
	}

	s.ticks++
	if frame.Skipped {
		s.skipped++
	}
	if frame.Locked {
		s.locked++
	}
	s.cleared += int64(frame.Cleared)
	return frame
}

// Stats returns a copy of the pipeline counters.
func (s *Scheduler) Stats() *PipelineStats {
	stats := &PipelineStats{
		Ticks:   s.ticks,
		Skipped: s.skipped,
		Locked:  s.locked,
		Cleared: s.cleared,
		Steps:   make([]StepStats, len(s.steps)),
	}

	for i, c := range s.steps {
		var avg, minDuration time.Duration
		if c.runs > 0 {
			avg = c.totalDuration / time.Duration(c.runs)
			minDuration = c.minDuration
		}
		stats.Steps[i] = StepStats{
			Name:          c.name,
			Runs:          c.runs,
			Acted:         c.acted,
			Events:        c.events,
			MinDuration:   minDuration,
			MaxDuration:   c.maxDuration,
			AvgDuration:   avg,
			LastDuration:  c.lastDuration,
			TotalDuration: c.totalDuration,
		}
	}
	return stats
}
