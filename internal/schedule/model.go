package schedule

import "time"

type SessionStatus string

const (
	StatusScheduled SessionStatus = "SCHEDULED"
	StatusCancelled SessionStatus = "CANCELLED"
	StatusCompleted SessionStatus = "COMPLETED"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ResourceKind identifies the serialization unit a booking contends on.
type ResourceKind string

const (
	ResourceTrainer ResourceKind = "trainer"
	ResourceRoom    ResourceKind = "room"
)

type SessionKind string

const (
	KindClass SessionKind = "class"
	KindPT    SessionKind = "pt"
)

// SessionRef names one concrete session across both kinds, since class
// and PT sessions live in separate tables with separate id sequences.
type SessionRef struct {
	Kind SessionKind
	ID   int
}

type ClassSession struct {
	ID          int           `db:"id" json:"id"`
	ClassTypeID int           `db:"class_type_id" json:"class_type_id"`
	TrainerID   int           `db:"trainer_id" json:"trainer_id"`
	RoomID      int           `db:"room_id" json:"room_id"`
	StartTime   time.Time     `db:"start_time" json:"start_time"`
	EndTime     time.Time     `db:"end_time" json:"end_time"`
	Capacity    *int          `db:"capacity" json:"capacity,omitempty"`
	Status      SessionStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

func (s ClassSession) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

type PTSession struct {
	ID        int           `db:"id" json:"id"`
	MemberID  int           `db:"member_id" json:"member_id"`
	TrainerID int           `db:"trainer_id" json:"trainer_id"`
	RoomID    int           `db:"room_id" json:"room_id"`
	StartTime time.Time     `db:"start_time" json:"start_time"`
	EndTime   time.Time     `db:"end_time" json:"end_time"`
	Status    SessionStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

func (s PTSession) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

// ScheduledSession is the read surface exposed to status-management
// collaborators and trainer schedule views: SCHEDULED sessions of both
// kinds for one resource, flattened.
type ScheduledSession struct {
	Kind      SessionKind `db:"kind" json:"kind"`
	ID        int         `db:"id" json:"id"`
	TrainerID int         `db:"trainer_id" json:"trainer_id"`
	RoomID    int         `db:"room_id" json:"room_id"`
	StartTime time.Time   `db:"start_time" json:"start_time"`
	EndTime   time.Time   `db:"end_time" json:"end_time"`
}

func (s ScheduledSession) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

type CreateClassSessionRequest struct {
	ClassTypeID int       `json:"class_type_id" binding:"required"`
	TrainerID   int       `json:"trainer_id" binding:"required"`
	RoomID      int       `json:"room_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Capacity    *int      `json:"capacity,omitempty" validate:"omitempty,min=1"`
}

type CreatePTSessionRequest struct {
	TrainerID int       `json:"trainer_id" binding:"required"`
	RoomID    int       `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type UpdateSessionStatusRequest struct {
	Status SessionStatus `json:"status" binding:"required"`
}
