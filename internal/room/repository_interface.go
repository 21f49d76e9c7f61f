package room

import "context"

type Repository interface {
	CreateRoom(ctx context.Context, name string, capacity int) (*Room, error)
	GetRoomByID(ctx context.Context, id int) (*Room, error)
	// GetRoomCapacity serves class sessions without a capacity of their
	// own: the room's maximum occupancy is the fallback.
	GetRoomCapacity(ctx context.Context, id int) (int, error)
	ListRooms(ctx context.Context) ([]Room, error)
}
