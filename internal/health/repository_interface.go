package health

import "context"

type Repository interface {
	RecordMetric(ctx context.Context, memberID int, req RecordMetricRequest) (*Metric, error)
	ListByMember(ctx context.Context, memberID int) ([]Metric, error)
}
