package main

import (
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/plus3/stackfall/game"
)

const sampleRate = beep.SampleRate(44100)

// sound plays short tones for game events. A zero sound is silent. observe
// runs on the loop goroutine while close runs on main, hence the atomic.
type sound struct {
	enabled atomic.Bool
}

// newSound initializes the speaker. Failure leaves the game silent.
func newSound(enabled bool, log logrus.FieldLogger) *sound {
	if !enabled {
		return &sound{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.WithError(err).Warn("audio initialization failed, continuing without sound")
		return &sound{}
	}
	s := &sound{}
	s.enabled.Store(true)
	return s
}

func (s *sound) tone(freq float64, d time.Duration) {
	if !s.enabled.Load() {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// observe is a game.Loop listener.
func (s *sound) observe(ev game.Event) {
	switch ev.Kind {
	case game.EventLinesCleared:
		s.tone(toneForLines(ev.Lines), 80*time.Millisecond)
	case game.EventLevelChanged:
		s.tone(1320, 40*time.Millisecond)
	case game.EventGameOver:
		s.tone(196, 400*time.Millisecond)
	}
}

// toneForLines picks a higher pitch for larger clears.
func toneForLines(lines int) float64 {
	return 440 + 220*float64(max(lines, 1)-1)
}

func (s *sound) close() {
	if s.enabled.Swap(false) {
		speaker.Close()
	}
}
