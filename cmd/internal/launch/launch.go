// Package launch wires configuration, logging and persistence for the
// interactive frontends.
package launch

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/plus3/stackfall/config"
	"github.com/plus3/stackfall/game"
	"github.com/plus3/stackfall/scores"
	"github.com/plus3/stackfall/scores/sqlite"
)

// Env is everything a frontend needs to start a Loop.
type Env struct {
	Config config.Config
	Log    *logrus.Logger
	Keeper *scores.Keeper
	Seed   uint64

	closers []io.Closer
}

// ErrUnknownBackend is returned for a leaderboard backend name that is not
// one of the config.Backend* constants.
var ErrUnknownBackend = errors.New("unknown leaderboard backend")

// Setup opens the log file and the configured leaderboard backend. A known
// backend that fails to open is logged and replaced by an empty, read-only
// leaderboard so the game still starts; an unknown backend name is an error.
func Setup(cfg config.Config) (*Env, error) {
	log, logFile, err := cfg.OpenLog()
	if err != nil {
		return nil, err
	}
	e := &Env{Config: cfg, Log: log, closers: []io.Closer{logFile}}

	board, closer, err := OpenLeaderboard(cfg)
	switch {
	case errors.Is(err, ErrUnknownBackend):
		e.Close()
		return nil, err
	case err != nil:
		log.WithError(err).WithField("leaderboard", cfg.Backend()).
			Warn("leaderboard unavailable, continuing without it")
		board = scores.UnavailableLeaderboard{Cause: err}
	case closer != nil:
		e.closers = append(e.closers, closer)
	}

	e.Keeper = scores.NewKeeper(scores.NewHighScoreStore(cfg.HighScorePath()), board, log)
	e.Seed = cfg.Seed
	if e.Seed == 0 {
		e.Seed = uint64(time.Now().UnixNano())
	}

	log.WithFields(logrus.Fields{
		"leaderboard": cfg.Backend(),
		"high_score":  cfg.HighScorePath(),
		"seed":        e.Seed,
	}).Info("starting")
	return e, nil
}

// OpenLeaderboard returns the backend named by cfg. The closer is nil for
// backends that hold no resources.
func OpenLeaderboard(cfg config.Config) (scores.Leaderboard, io.Closer, error) {
	switch cfg.Backend() {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.LeaderboardDBPath())
		if err != nil {
			return nil, nil, fmt.Errorf("open leaderboard: %w", err)
		}
		return store, store, nil
	case config.BackendFile:
		return scores.NewFileLeaderboard(cfg.LeaderboardPath()), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Leaderboard)
	}
}

// NewLoop builds a game loop seeded from the environment.
func (e *Env) NewLoop() *game.Loop {
	return game.NewLoop(game.Options{
		Rand:     rand.New(rand.NewPCG(e.Seed, e.Seed>>1|1)),
		Recorder: e.Keeper,
		Log:      e.Log,
	})
}

// Close releases the leaderboard and the log file, in reverse order of
// opening.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Locale derives the number formatting language from LC_ALL or LANG,
// falling back to English.
func Locale() language.Tag {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if tag, ok := parseLocale(os.Getenv(key)); ok {
			return tag
		}
	}
	return language.English
}

func parseLocale(value string) (language.Tag, bool) {
	value, _, _ = strings.Cut(value, ".")
	value, _, _ = strings.Cut(value, "@")
	if value == "" || value == "C" || value == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
