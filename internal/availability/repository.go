package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gymdesk/internal/schedule"
)

var (
	ErrWindowOverlap      = errors.New("overlaps with existing availability window")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// Lock namespace for per-trainer availability writes; disjoint from the
// session booking namespaces so window edits never stall bookings.
const lockNSAvailability = 3

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AddWindow(ctx context.Context, trainerID int, iv schedule.Interval) (*Window, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockNSAvailability, trainerID); err != nil {
		return nil, storageErr(err)
	}

	overlapQuery := `
		SELECT EXISTS(
			SELECT 1 FROM availability_windows a
			WHERE a.trainer_id = $1
			  AND NOT ($3 <= a.start_time OR a.end_time <= $2)
		)
	`

	var overlaps bool
	if err := tx.GetContext(ctx, &overlaps, overlapQuery, trainerID, iv.Start, iv.End); err != nil {
		return nil, storageErr(err)
	}
	if overlaps {
		return nil, ErrWindowOverlap
	}

	insertQuery := `
		INSERT INTO availability_windows (trainer_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, trainer_id, start_time, end_time, created_at
	`

	var window Window
	if err := tx.GetContext(ctx, &window, insertQuery, trainerID, iv.Start, iv.End); err != nil {
		return nil, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}

	return &window, nil
}

func (r *repository) Covers(ctx context.Context, trainerID int, iv schedule.Interval) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM availability_windows a
			WHERE a.trainer_id = $1
			  AND a.start_time <= $2
			  AND $3 <= a.end_time
		)
	`

	var covered bool
	err := r.db.GetContext(ctx, &covered, query, trainerID, iv.Start, iv.End)
	if err != nil {
		return false, storageErr(err)
	}

	return covered, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]Window, error) {
	query := `
		SELECT id, trainer_id, start_time, end_time, created_at
		FROM availability_windows
		WHERE trainer_id = $1
		ORDER BY start_time ASC
	`

	var windows []Window
	err := r.db.SelectContext(ctx, &windows, query, trainerID)
	if err != nil {
		return nil, storageErr(err)
	}

	return windows, nil
}
