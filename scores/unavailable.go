package scores

import (
	"context"
	"fmt"
)

// UnavailableLeaderboard stands in for a backend that could not be opened.
// It reads as empty and refuses appends with the original cause, which the
// Keeper logs.
type UnavailableLeaderboard struct {
	Cause error
}

var _ Leaderboard = UnavailableLeaderboard{}

func (l UnavailableLeaderboard) Append(ctx context.Context, rec Record) error {
	return fmt.Errorf("leaderboard unavailable: %w", l.Cause)
}

func (l UnavailableLeaderboard) Records(ctx context.Context) ([]Record, error) {
	return nil, nil
}
