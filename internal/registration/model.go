package registration

import "time"

// Registration admits one member into one class session; the
// (member, session) pair is unique and a duplicate attempt succeeds
// without a second row.
type Registration struct {
	ID             int       `db:"id" json:"id"`
	MemberID       int       `db:"member_id" json:"member_id"`
	ClassSessionID int       `db:"class_session_id" json:"class_session_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type RegistrationWithDetails struct {
	Registration
	ClassTypeID  int       `db:"class_type_id" json:"class_type_id"`
	RoomID       int       `db:"room_id" json:"room_id"`
	SessionStart time.Time `db:"session_start" json:"session_start"`
	SessionEnd   time.Time `db:"session_end" json:"session_end"`
	RoomName     string    `db:"room_name" json:"room_name"`
	TrainerName  string    `db:"trainer_name" json:"trainer_name"`
}
