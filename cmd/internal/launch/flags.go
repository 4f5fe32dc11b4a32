package launch

import (
	"flag"

	"github.com/plus3/stackfall/config"
)

// Flags are the command-line overrides shared by the frontends. Zero values
// leave the environment's setting in place.
type Flags struct {
	Seed        uint64
	Leaderboard string
	DataDir     string
	LogLevel    string
	Mute        bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.Uint64Var(&f.Seed, "seed", 0, "Seed for the piece sequence. Overrides STACKFALL_SEED.")
	fs.StringVar(&f.Leaderboard, "leaderboard", "", "Leaderboard backend, file or sqlite. Overrides STACKFALL_LEADERBOARD.")
	fs.StringVar(&f.DataDir, "data-dir", "", "Directory for scores and logs. Overrides STACKFALL_DATA_DIR.")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level. Overrides STACKFALL_LOG_LEVEL.")
	fs.BoolVar(&f.Mute, "mute", false, "Disable sound.")
}

// Apply merges the flags into cfg and validates the result.
func (f Flags) Apply(cfg *config.Config) error {
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	if f.Leaderboard != "" {
		cfg.Leaderboard = f.Leaderboard
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.Mute {
		cfg.Sound = false
	}
	return cfg.Validate()
}
