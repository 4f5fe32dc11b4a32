// Package progression tracks score, high score and difficulty level.
package progression

import (
	"slices"
	"strings"
	"time"
)

const (
	MinLevel = 0
	MaxLevel = 4
)

var (
	linePoints      = map[int]int{1: 100, 2: 300, 3: 500, 4: 800}
	levelThresholds = [...]int{0, 1000, 3000, 6000, 10000}
	levelSpeeds     = [...]time.Duration{
		1000 * time.Millisecond,
		800 * time.Millisecond,
		500 * time.Millisecond,
		300 * time.Millisecond,
		100 * time.Millisecond,
	}
	levelNames = [...]string{"Easy", "Medium", "Hard", "Expert", "Master"}
)

// AllLevels is the leaderboard filter value matching every level name.
const AllLevels = "all"

// Progression accumulates the score of one game and derives its difficulty.
type Progression struct {
	score     int
	highScore int
	level     int
}

// New starts a game at level 0 with the previously persisted high score.
func New(highScore int) *Progression {
	return &Progression{highScore: max(highScore, 0)}
}

func (p *Progression) Score() int     { return p.score }
func (p *Progression) HighScore() int { return p.highScore }
func (p *Progression) Level() int     { return p.level }

// Points returns the score awarded for clearing lines rows at once.
func Points(lines int) int {
	return linePoints[lines]
}

// AddScore awards the points for clearing lines rows and raises the high
// score if the running score passes it.
func (p *Progression) AddScore(lines int) {
	p.score += Points(lines)
	if p.score > p.highScore {
		p.highScore = p.score
	}
}

// AutoAdjustDifficulty sets the level to the highest one whose threshold is
// reached by score. Any manual level is overwritten.
func (p *Progression) AutoAdjustDifficulty(score int) {
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if score >= levelThresholds[i] {
			p.level = i
			return
		}
	}
}

// Increase raises the level by one, up to MaxLevel.
func (p *Progression) Increase() {
	if p.level < MaxLevel {
		p.level++
	}
}

// Decrease lowers the level by one, down to MinLevel.
func (p *Progression) Decrease() {
	if p.level > MinLevel {
		p.level--
	}
}

// Speed is the tick interval for the current level.
func (p *Progression) Speed() time.Duration {
	return SpeedForLevel(p.level)
}

// LevelName is the display name of the current level.
func (p *Progression) LevelName() string {
	return LevelName(p.level)
}

// SpeedForLevel returns the automatic descent interval for level. Out of
// range levels are clamped.
func SpeedForLevel(level int) time.Duration {
	return levelSpeeds[clampLevel(level)]
}

// Threshold returns the score at which level is reached automatically.
func Threshold(level int) int {
	return levelThresholds[clampLevel(level)]
}

// LevelName returns the display name for level.
func LevelName(level int) string {
	return levelNames[clampLevel(level)]
}

// LevelNames lists the display names from easiest to hardest.
func LevelNames() []string {
	return slices.Clone(levelNames[:])
}

// ParseLevelName maps a display name back to its level, ignoring case.
func ParseLevelName(name string) (int, bool) {
	for i, n := range levelNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

func clampLevel(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}
