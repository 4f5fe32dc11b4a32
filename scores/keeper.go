package scores

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Keeper combines the high score store and a leaderboard. Its methods never
// fail: persistence errors are logged and read as empty data.
type Keeper struct {
	HighScores  *HighScoreStore
	Leaderboard Leaderboard
	Log         logrus.FieldLogger
	Now         func() time.Time
}

func NewKeeper(high *HighScoreStore, board Leaderboard, log logrus.FieldLogger) *Keeper {
	return &Keeper{
		HighScores:  high,
		Leaderboard: board,
		Log:         log,
		Now:         time.Now,
	}
}

// LoadHighScore returns the persisted high score, or 0 when it cannot be read.
func (k *Keeper) LoadHighScore() int {
	score, err := k.HighScores.Load()
	if err != nil {
		k.Log.WithError(err).WithField("path", k.HighScores.Path()).Warn("high score unavailable, starting from 0")
		return 0
	}
	return score
}

// RecordGame saves the high score and, when score qualifies, appends a
// leaderboard record stamped with the current time.
func (k *Keeper) RecordGame(ctx context.Context, score, highScore int, difficulty string) {
	if err := k.HighScores.Save(highScore); err != nil {
		k.Log.WithError(err).Error("save high score")
	}
	if !Qualifies(score) {
		return
	}
	rec := Record{Score: score, Difficulty: difficulty, Time: k.Now()}
	if err := k.Leaderboard.Append(ctx, rec); err != nil {
		k.Log.WithError(err).WithField("score", score).Error("append leaderboard record")
		return
	}
	k.Log.WithFields(logrus.Fields{"score": score, "difficulty": difficulty}).Info("leaderboard record saved")
}

// Top returns the leaderboard filtered by difficulty name or "all".
func (k *Keeper) Top(ctx context.Context, filter string) []Record {
	records, err := k.Leaderboard.Records(ctx)
	if err != nil {
		k.Log.WithError(err).Warn("leaderboard unavailable")
		return nil
	}
	return Query(records, filter)
}
