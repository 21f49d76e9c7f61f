package availability

import (
	"context"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/schedule"
)

type Service interface {
	AddWindow(ctx context.Context, trainerID int, req AddWindowRequest) (*Window, error)
	Covers(ctx context.Context, trainerID int, iv schedule.Interval) (bool, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Window, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddWindow(ctx context.Context, trainerID int, req AddWindowRequest) (*Window, error) {
	iv, err := schedule.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	window, err := s.repo.AddWindow(ctx, trainerID, iv)
	if err != nil {
		return nil, err
	}

	metrics.RecordAvailabilityWindow()
	logger.Info("availability window added",
		"window_id", window.ID, "trainer_id", trainerID)

	return window, nil
}

func (s *service) Covers(ctx context.Context, trainerID int, iv schedule.Interval) (bool, error) {
	return s.repo.Covers(ctx, trainerID, iv)
}

func (s *service) ListByTrainer(ctx context.Context, trainerID int) ([]Window, error) {
	return s.repo.ListByTrainer(ctx, trainerID)
}
