package availability

import (
	"context"

	"gymdesk/internal/schedule"
)

type Repository interface {
	// AddWindow inserts the window unless it overlaps an existing window
	// of the same trainer; on overlap nothing is written and
	// ErrWindowOverlap is returned.
	AddWindow(ctx context.Context, trainerID int, iv schedule.Interval) (*Window, error)

	// Covers reports whether a single existing window fully contains iv.
	// Adjacent windows do not combine into coverage.
	Covers(ctx context.Context, trainerID int, iv schedule.Interval) (bool, error)

	ListByTrainer(ctx context.Context, trainerID int) ([]Window, error)
}
