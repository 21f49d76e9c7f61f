package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSessionNotFound    = errors.New("class session not found")
	ErrSessionNotOpen     = errors.New("class session is not open for registration")
	ErrClassFull          = errors.New("class is full")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Register(ctx context.Context, memberID, classSessionID int) (*Registration, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback()

	// Locking the session row serializes every registration for this
	// session; the count below cannot go stale before the insert commits.
	sessionQuery := `
		SELECT COALESCE(cs.capacity, r.capacity) AS capacity, cs.status
		FROM class_sessions cs
		JOIN rooms r ON r.id = cs.room_id
		WHERE cs.id = $1
		FOR UPDATE OF cs
	`

	var session struct {
		Capacity int    `db:"capacity"`
		Status   string `db:"status"`
	}
	err = tx.GetContext(ctx, &session, sessionQuery, classSessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	if session.Status != "SCHEDULED" {
		return nil, ErrSessionNotOpen
	}

	countQuery := `
		SELECT COUNT(*)
		FROM member_class_registrations
		WHERE class_session_id = $1
	`

	var count int
	if err := tx.GetContext(ctx, &count, countQuery, classSessionID); err != nil {
		return nil, storageErr(err)
	}

	if count >= session.Capacity {
		return nil, ErrClassFull
	}

	insertQuery := `
		INSERT INTO member_class_registrations (member_id, class_session_id)
		VALUES ($1, $2)
		ON CONFLICT (member_id, class_session_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, insertQuery, memberID, classSessionID); err != nil {
		return nil, storageErr(err)
	}

	// Fetch covers both the fresh insert and the idempotent duplicate.
	var reg Registration
	selectQuery := `
		SELECT id, member_id, class_session_id, created_at
		FROM member_class_registrations
		WHERE member_id = $1 AND class_session_id = $2
	`
	if err := tx.GetContext(ctx, &reg, selectQuery, memberID, classSessionID); err != nil {
		return nil, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}

	return &reg, nil
}

func (r *repository) CountForSession(ctx context.Context, classSessionID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM member_class_registrations
		WHERE class_session_id = $1
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, classSessionID)
	if err != nil {
		return 0, storageErr(err)
	}

	return count, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]RegistrationWithDetails, error) {
	query := `
		SELECT
			rg.id,
			rg.member_id,
			rg.class_session_id,
			rg.created_at,
			cs.class_type_id,
			cs.room_id,
			cs.start_time AS session_start,
			cs.end_time AS session_end,
			r.name AS room_name,
			u.name AS trainer_name
		FROM member_class_registrations rg
		JOIN class_sessions cs ON cs.id = rg.class_session_id
		JOIN rooms r ON r.id = cs.room_id
		JOIN users u ON u.id = cs.trainer_id
		WHERE rg.member_id = $1
		ORDER BY cs.start_time ASC
	`

	var regs []RegistrationWithDetails
	err := r.db.SelectContext(ctx, &regs, query, memberID)
	if err != nil {
		return nil, storageErr(err)
	}

	return regs, nil
}
