package registration

import "context"

type Repository interface {
	// Register performs the capacity check and the insert as one
	// transaction with the class session row locked, so concurrent
	// registrations for the same session are serialized. A duplicate
	// (member, session) registration returns the existing row.
	Register(ctx context.Context, memberID, classSessionID int) (*Registration, error)

	CountForSession(ctx context.Context, classSessionID int) (int, error)

	ListByMember(ctx context.Context, memberID int) ([]RegistrationWithDetails, error)
}
