package health

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordMetric(ctx context.Context, memberID int, req RecordMetricRequest) (*Metric, error) {
	query := `
		INSERT INTO health_metrics (member_id, weight_kg, body_fat_percent, resting_hr, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, member_id, weight_kg, body_fat_percent, resting_hr, notes, recorded_at
	`

	var metric Metric
	err := r.db.GetContext(ctx, &metric, query,
		memberID, req.WeightKg, req.BodyFatPercent, req.RestingHR, req.Notes)
	if err != nil {
		return nil, err
	}

	return &metric, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Metric, error) {
	query := `
		SELECT id, member_id, weight_kg, body_fat_percent, resting_hr, notes, recorded_at
		FROM health_metrics
		WHERE member_id = $1
		ORDER BY recorded_at DESC
	`

	var metrics []Metric
	err := r.db.SelectContext(ctx, &metrics, query, memberID)
	if err != nil {
		return nil, err
	}

	return metrics, nil
}
