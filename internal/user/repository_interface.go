package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// ExistsWithRole is the directory lookup the booking core uses to
	// resolve member and trainer identities.
	ExistsWithRole(ctx context.Context, id int, role string) (bool, error)
}
