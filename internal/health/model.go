package health

import "time"

type Metric struct {
	ID             int       `json:"id" db:"id"`
	MemberID       int       `json:"member_id" db:"member_id"`
	WeightKg       *float64  `json:"weight_kg,omitempty" db:"weight_kg"`
	BodyFatPercent *float64  `json:"body_fat_percent,omitempty" db:"body_fat_percent"`
	RestingHR      *int      `json:"resting_hr,omitempty" db:"resting_hr"`
	Notes          string    `json:"notes,omitempty" db:"notes"`
	RecordedAt     time.Time `json:"recorded_at" db:"recorded_at"`
}

type RecordMetricRequest struct {
	WeightKg       *float64 `json:"weight_kg" binding:"omitempty,gt=0"`
	BodyFatPercent *float64 `json:"body_fat_percent" binding:"omitempty,gt=0,lt=100"`
	RestingHR      *int     `json:"resting_hr" binding:"omitempty,gt=0"`
	Notes          string   `json:"notes"`
}
