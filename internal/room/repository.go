package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrRoomNotFound = errors.New("room not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRoom(ctx context.Context, name string, capacity int) (*Room, error) {
	query := `
		INSERT INTO rooms (name, capacity)
		VALUES ($1, $2)
		RETURNING id, name, capacity, created_at
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, name, capacity)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetRoomByID(ctx context.Context, id int) (*Room, error) {
	query := `
		SELECT id, name, capacity, created_at
		FROM rooms
		WHERE id = $1
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetRoomCapacity(ctx context.Context, id int) (int, error) {
	query := `SELECT capacity FROM rooms WHERE id = $1`

	var capacity int
	err := r.db.GetContext(ctx, &capacity, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRoomNotFound
	}
	if err != nil {
		return 0, err
	}

	return capacity, nil
}

func (r *repository) ListRooms(ctx context.Context) ([]Room, error) {
	query := `
		SELECT id, name, capacity, created_at
		FROM rooms
		ORDER BY name ASC
	`

	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}
