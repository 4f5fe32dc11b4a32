package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/stackfall/game"
)

type binding struct {
	key     ebiten.Key
	command game.Command
	// repeat lets a held key fire again after a delay.
	repeat bool
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, game.MoveLeft, true},
	{ebiten.KeyArrowRight, game.MoveRight, true},
	{ebiten.KeyArrowDown, game.SoftDrop, true},
	{ebiten.KeyArrowUp, game.Rotate, false},
	{ebiten.KeyX, game.Rotate, false},
	{ebiten.KeySpace, game.HardDrop, false},
	{ebiten.KeyP, game.Pause, false},
	{ebiten.KeyR, game.Restart, false},
	{ebiten.KeyEqual, game.DifficultyUp, false},
	{ebiten.KeyNumpadAdd, game.DifficultyUp, false},
	{ebiten.KeyMinus, game.DifficultyDown, false},
	{ebiten.KeyNumpadSubtract, game.DifficultyDown, false},
	{ebiten.KeyB, game.Leaderboard, false},
}

const (
	repeatDelay    = 10
	repeatInterval = 3
)

// fires reports whether a key held for frames ticks should trigger this
// frame. Zero means the key is up.
func (b binding) fires(frames int) bool {
	switch {
	case frames == 0:
		return false
	case frames == 1:
		return true
	case !b.repeat:
		return false
	}
	return frames > repeatDelay && (frames-repeatDelay)%repeatInterval == 0
}
