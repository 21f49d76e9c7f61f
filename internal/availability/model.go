package availability

import (
	"time"

	"gymdesk/internal/schedule"
)

// Window is a time range a trainer is willing to work. Windows of one
// trainer never overlap; they are created once and never merged or
// edited.
type Window struct {
	ID        int       `db:"id" json:"id"`
	TrainerID int       `db:"trainer_id" json:"trainer_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (w Window) Interval() schedule.Interval {
	return schedule.Interval{Start: w.StartTime, End: w.EndTime}
}

type AddWindowRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
