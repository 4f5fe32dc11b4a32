package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/stackfall/game"
)

// keyCommands maps special keys to game commands.
var keyCommands = map[tcell.Key]game.Command{
	tcell.KeyLeft:  game.MoveLeft,
	tcell.KeyRight: game.MoveRight,
	tcell.KeyDown:  game.SoftDrop,
	tcell.KeyUp:    game.Rotate,
}

// runeCommands maps printable keys to game commands.
var runeCommands = map[rune]game.Command{
	' ': game.HardDrop,
	'h': game.MoveLeft,
	'l': game.MoveRight,
	'j': game.SoftDrop,
	'k': game.Rotate,
	'p': game.Pause,
	'r': game.Restart,
	'+': game.DifficultyUp,
	'=': game.DifficultyUp,
	'-': game.DifficultyDown,
	'b': game.Leaderboard,
}

// commandFor translates a key press into a game command.
func commandFor(ev *tcell.EventKey) (game.Command, bool) {
	if ev.Key() == tcell.KeyRune {
		cmd, ok := runeCommands[ev.Rune()]
		return cmd, ok
	}
	cmd, ok := keyCommands[ev.Key()]
	return cmd, ok
}

// isQuit reports whether ev should end the program.
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
