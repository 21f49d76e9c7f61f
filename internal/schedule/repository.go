package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Advisory lock namespaces, one per resource kind. Every booking takes
// pg_advisory_xact_lock(namespace, resource id) before its feasibility
// queries, so two concurrent bookings contending on the same trainer or
// room are serialized for the whole check-then-write, while bookings on
// disjoint resources proceed in parallel. The locks release with the
// transaction.
const (
	lockNSTrainer = 1
	lockNSRoom    = 2
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func lockResource(ctx context.Context, tx *sqlx.Tx, namespace, resourceID int) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, namespace, resourceID)
	return err
}

// trainerBusy reports whether any SCHEDULED session of either kind for the
// trainer overlaps iv. Boundary touches are not overlaps.
func trainerBusy(ctx context.Context, q sqlx.QueryerContext, trainerID int, iv Interval, exclude *SessionRef) (bool, error) {
	excludeClass, excludePT := excludeIDs(exclude)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM class_sessions cs
			WHERE cs.trainer_id = $1 AND cs.status = 'SCHEDULED'
			  AND cs.id <> $4
			  AND NOT ($3 <= cs.start_time OR cs.end_time <= $2)
		) OR EXISTS(
			SELECT 1 FROM pt_sessions p
			WHERE p.trainer_id = $1 AND p.status = 'SCHEDULED'
			  AND p.id <> $5
			  AND NOT ($3 <= p.start_time OR p.end_time <= $2)
		)
	`

	var busy bool
	err := sqlx.GetContext(ctx, q, &busy, query, trainerID, iv.Start, iv.End, excludeClass, excludePT)
	return busy, err
}

// roomBusy scans SCHEDULED class sessions only; PT sessions do not contend
// on room exclusivity.
func roomBusy(ctx context.Context, q sqlx.QueryerContext, roomID int, iv Interval, exclude *SessionRef) (bool, error) {
	excludeClass, _ := excludeIDs(exclude)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM class_sessions cs
			WHERE cs.room_id = $1 AND cs.status = 'SCHEDULED'
			  AND cs.id <> $4
			  AND NOT ($3 <= cs.start_time OR cs.end_time <= $2)
		)
	`

	var busy bool
	err := sqlx.GetContext(ctx, q, &busy, query, roomID, iv.Start, iv.End, excludeClass)
	return busy, err
}

// availabilityCovers requires a single window to contain the whole
// interval; adjacent windows do not combine.
func availabilityCovers(ctx context.Context, q sqlx.QueryerContext, trainerID int, iv Interval) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM availability_windows a
			WHERE a.trainer_id = $1
			  AND a.start_time <= $2
			  AND $3 <= a.end_time
		)
	`

	var covered bool
	err := sqlx.GetContext(ctx, q, &covered, query, trainerID, iv.Start, iv.End)
	return covered, err
}

func excludeIDs(exclude *SessionRef) (classID, ptID int) {
	if exclude == nil {
		return 0, 0
	}
	switch exclude.Kind {
	case KindClass:
		return exclude.ID, 0
	case KindPT:
		return 0, exclude.ID
	}
	return 0, 0
}

func (r *repository) CreateClassSession(ctx context.Context, p CreateClassSessionParams) (*ClassSession, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback()

	if err := lockResource(ctx, tx, lockNSRoom, p.RoomID); err != nil {
		return nil, storageErr(err)
	}
	if err := lockResource(ctx, tx, lockNSTrainer, p.TrainerID); err != nil {
		return nil, storageErr(err)
	}

	busy, err := roomBusy(ctx, tx, p.RoomID, p.Interval, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	if busy {
		return nil, ErrRoomConflict
	}

	busy, err = trainerBusy(ctx, tx, p.TrainerID, p.Interval, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	if busy {
		return nil, ErrTrainerConflict
	}

	query := `
		INSERT INTO class_sessions (class_type_id, trainer_id, room_id, start_time, end_time, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'SCHEDULED')
		RETURNING id, class_type_id, trainer_id, room_id, start_time, end_time, capacity, status, created_at
	`

	var session ClassSession
	err = tx.GetContext(ctx, &session, query,
		p.ClassTypeID, p.TrainerID, p.RoomID, p.Interval.Start, p.Interval.End, p.Capacity)
	if err != nil {
		return nil, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}

	return &session, nil
}

func (r *repository) CreatePTSession(ctx context.Context, p CreatePTSessionParams) (*PTSession, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback()

	if err := lockResource(ctx, tx, lockNSTrainer, p.TrainerID); err != nil {
		return nil, storageErr(err)
	}

	covered, err := availabilityCovers(ctx, tx, p.TrainerID, p.Interval)
	if err != nil {
		return nil, storageErr(err)
	}
	if !covered {
		return nil, ErrTrainerUnavailable
	}

	busy, err := trainerBusy(ctx, tx, p.TrainerID, p.Interval, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	if busy {
		return nil, ErrTrainerConflict
	}

	query := `
		INSERT INTO pt_sessions (member_id, trainer_id, room_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, 'SCHEDULED')
		RETURNING id, member_id, trainer_id, room_id, start_time, end_time, status, created_at
	`

	var session PTSession
	err = tx.GetContext(ctx, &session, query,
		p.MemberID, p.TrainerID, p.RoomID, p.Interval.Start, p.Interval.End)
	if err != nil {
		return nil, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}

	return &session, nil
}

func (r *repository) HasConflict(ctx context.Context, kind ResourceKind, resourceID int, iv Interval, exclude *SessionRef) (bool, error) {
	switch kind {
	case ResourceTrainer:
		busy, err := trainerBusy(ctx, r.db, resourceID, iv, exclude)
		if err != nil {
			return false, storageErr(err)
		}
		return busy, nil
	case ResourceRoom:
		busy, err := roomBusy(ctx, r.db, resourceID, iv, exclude)
		if err != nil {
			return false, storageErr(err)
		}
		return busy, nil
	}
	return false, errors.New("unknown resource kind: " + string(kind))
}

func (r *repository) GetClassSession(ctx context.Context, id int) (*ClassSession, error) {
	query := `
		SELECT id, class_type_id, trainer_id, room_id, start_time, end_time, capacity, status, created_at
		FROM class_sessions
		WHERE id = $1
	`

	var session ClassSession
	err := r.db.GetContext(ctx, &session, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	return &session, nil
}

func (r *repository) ListScheduledSessions(ctx context.Context, kind ResourceKind, resourceID int) ([]ScheduledSession, error) {
	var query string
	switch kind {
	case ResourceTrainer:
		query = `
			SELECT 'class' AS kind, id, trainer_id, room_id, start_time, end_time
			FROM class_sessions
			WHERE trainer_id = $1 AND status = 'SCHEDULED'
			UNION ALL
			SELECT 'pt' AS kind, id, trainer_id, room_id, start_time, end_time
			FROM pt_sessions
			WHERE trainer_id = $1 AND status = 'SCHEDULED'
			ORDER BY start_time
		`
	case ResourceRoom:
		query = `
			SELECT 'class' AS kind, id, trainer_id, room_id, start_time, end_time
			FROM class_sessions
			WHERE room_id = $1 AND status = 'SCHEDULED'
			ORDER BY start_time
		`
	default:
		return nil, errors.New("unknown resource kind: " + string(kind))
	}

	var sessions []ScheduledSession
	if err := r.db.SelectContext(ctx, &sessions, query, resourceID); err != nil {
		return nil, storageErr(err)
	}

	return sessions, nil
}

func (r *repository) UpdateSessionStatus(ctx context.Context, ref SessionRef, status SessionStatus) error {
	// Moving a session back to SCHEDULED re-enters the exclusivity domain,
	// so it must re-run the conflict checks the original booking ran.
	if status == StatusScheduled {
		return r.reinstateSession(ctx, ref)
	}

	var query string
	switch ref.Kind {
	case KindClass:
		query = `UPDATE class_sessions SET status = $2 WHERE id = $1`
	case KindPT:
		query = `UPDATE pt_sessions SET status = $2 WHERE id = $1`
	default:
		return errors.New("unknown session kind: " + string(ref.Kind))
	}

	result, err := r.db.ExecContext(ctx, query, ref.ID, status)
	if err != nil {
		return storageErr(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr(err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// reinstateSession flips a session to SCHEDULED under the same advisory
// locks and busy checks as a fresh booking, excluding the session itself
// from the overlap scan. Other sessions booked into the freed slot while
// this one sat cancelled make the reinstatement fail with a conflict.
func (r *repository) reinstateSession(ctx context.Context, ref SessionRef) error {
	var selectQuery, updateQuery string
	switch ref.Kind {
	case KindClass:
		selectQuery = `SELECT trainer_id, room_id, start_time, end_time FROM class_sessions WHERE id = $1 FOR UPDATE`
		updateQuery = `UPDATE class_sessions SET status = $2 WHERE id = $1`
	case KindPT:
		selectQuery = `SELECT trainer_id, room_id, start_time, end_time FROM pt_sessions WHERE id = $1 FOR UPDATE`
		updateQuery = `UPDATE pt_sessions SET status = $2 WHERE id = $1`
	default:
		return errors.New("unknown session kind: " + string(ref.Kind))
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	var row struct {
		TrainerID int       `db:"trainer_id"`
		RoomID    int       `db:"room_id"`
		StartTime time.Time `db:"start_time"`
		EndTime   time.Time `db:"end_time"`
	}
	err = tx.GetContext(ctx, &row, selectQuery, ref.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSessionNotFound
	}
	if err != nil {
		return storageErr(err)
	}

	iv := Interval{Start: row.StartTime, End: row.EndTime}

	if ref.Kind == KindClass {
		if err := lockResource(ctx, tx, lockNSRoom, row.RoomID); err != nil {
			return storageErr(err)
		}
	}
	if err := lockResource(ctx, tx, lockNSTrainer, row.TrainerID); err != nil {
		return storageErr(err)
	}

	if ref.Kind == KindClass {
		busy, err := roomBusy(ctx, tx, row.RoomID, iv, &ref)
		if err != nil {
			return storageErr(err)
		}
		if busy {
			return ErrRoomConflict
		}
	}

	busy, err := trainerBusy(ctx, tx, row.TrainerID, iv, &ref)
	if err != nil {
		return storageErr(err)
	}
	if busy {
		return ErrTrainerConflict
	}

	if _, err := tx.ExecContext(ctx, updateQuery, ref.ID, StatusScheduled); err != nil {
		return storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}

	return nil
}
