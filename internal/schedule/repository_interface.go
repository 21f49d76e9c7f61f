package schedule

import "context"

type CreateClassSessionParams struct {
	ClassTypeID int
	TrainerID   int
	RoomID      int
	Interval    Interval
	Capacity    *int
}

type CreatePTSessionParams struct {
	MemberID  int
	TrainerID int
	RoomID    int
	Interval  Interval
}

type Repository interface {
	// CreateClassSession runs the full check-then-write as one transaction:
	// room conflict, trainer conflict, insert. Returns ErrRoomConflict or
	// ErrTrainerConflict without mutating anything.
	CreateClassSession(ctx context.Context, p CreateClassSessionParams) (*ClassSession, error)

	// CreatePTSession checks availability coverage and trainer conflicts
	// (across both session kinds) before inserting, in one transaction.
	CreatePTSession(ctx context.Context, p CreatePTSessionParams) (*PTSession, error)

	// HasConflict is the pure read used for re-validation: does any
	// SCHEDULED session bound to the resource overlap iv? exclude, when
	// non-nil, removes one session from consideration.
	HasConflict(ctx context.Context, kind ResourceKind, resourceID int, iv Interval, exclude *SessionRef) (bool, error)

	GetClassSession(ctx context.Context, id int) (*ClassSession, error)

	ListScheduledSessions(ctx context.Context, kind ResourceKind, resourceID int) ([]ScheduledSession, error)

	// UpdateSessionStatus is the operator surface for cancellation and
	// completion; sessions leaving SCHEDULED stop blocking new bookings.
	UpdateSessionStatus(ctx context.Context, ref SessionRef, status SessionStatus) error
}
