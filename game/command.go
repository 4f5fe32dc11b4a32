package game

import "strings"

// Command is a discrete player input.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	Pause
	Restart
	DifficultyUp
	DifficultyDown
	Leaderboard
)

var commandNames = [...]string{
	MoveLeft:       "left",
	MoveRight:      "right",
	SoftDrop:       "down",
	Rotate:         "rotate",
	HardDrop:       "drop",
	Pause:          "pause",
	Restart:        "restart",
	DifficultyUp:   "harder",
	DifficultyDown: "easier",
	Leaderboard:    "leaderboard",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// ParseCommand looks a command up by its String name.
func ParseCommand(name string) (Command, bool) {
	for i, n := range commandNames {
		if strings.EqualFold(n, name) {
			return Command(i), true
		}
	}
	return 0, false
}

// EventKind classifies something that happened to a session.
type EventKind int

const (
	EventTick EventKind = iota
	EventMoved
	EventLocked
	EventLinesCleared
	EventLevelChanged
	EventGameOver
	EventPaused
	EventResumed
	EventRestarted
	EventLeaderboardRequested
)

var eventNames = [...]string{
	EventTick:                 "tick",
	EventMoved:                "moved",
	EventLocked:               "locked",
	EventLinesCleared:         "lines_cleared",
	EventLevelChanged:         "level_changed",
	EventGameOver:             "game_over",
	EventPaused:               "paused",
	EventResumed:              "resumed",
	EventRestarted:            "restarted",
	EventLeaderboardRequested: "leaderboard_requested",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is delivered to Loop listeners after the session lock is released.
// Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	Lines     int
	Level     int
	Score     int
	HighScore int
}
