package migrations

import "embed"

// FS contains the embedded SQLite migrations for the leaderboard.
//
//go:embed *.sql
var FS embed.FS
