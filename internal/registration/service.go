package registration

import (
	"context"
	"errors"

	"gymdesk/internal/auth"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/schedule"
	"gymdesk/internal/user"
)

var ErrMemberNotFound = errors.New("member not found")

type Service interface {
	Register(ctx context.Context, memberID, classSessionID int) (*Registration, error)
	ListByMember(ctx context.Context, memberID int) ([]RegistrationWithDetails, error)
}

type service struct {
	repo         Repository
	scheduleRepo schedule.Repository
	userRepo     user.Repository
	notifier     schedule.Notifier
}

func NewService(repo Repository, scheduleRepo schedule.Repository, userRepo user.Repository, notifier schedule.Notifier) Service {
	return &service{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (s *service) Register(ctx context.Context, memberID, classSessionID int) (*Registration, error) {
	isMember, err := s.userRepo.ExistsWithRole(ctx, memberID, auth.RoleMember)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrMemberNotFound
	}

	reg, err := s.repo.Register(ctx, memberID, classSessionID)
	if err != nil {
		if errors.Is(err, ErrClassFull) {
			metrics.RecordBookingRejection("class_full")
		}
		return nil, err
	}

	metrics.RecordRegistration()
	logger.Info("class registration admitted",
		"member_id", memberID, "class_session_id", classSessionID)

	s.confirm(ctx, memberID, classSessionID)

	return reg, nil
}

func (s *service) ListByMember(ctx context.Context, memberID int) ([]RegistrationWithDetails, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) confirm(ctx context.Context, memberID, classSessionID int) {
	if s.notifier == nil {
		return
	}

	member, err := s.userRepo.FindByID(ctx, memberID)
	if err != nil {
		logger.Error("registration confirmation skipped", "member_id", memberID, "err", err)
		return
	}

	session, err := s.scheduleRepo.GetClassSession(ctx, classSessionID)
	if err != nil {
		logger.Error("registration confirmation skipped", "class_session_id", classSessionID, "err", err)
		return
	}

	if err := s.notifier.BookingConfirmed(ctx, member.Email, member.Name, "Class registration", session.StartTime); err != nil {
		logger.Error("registration confirmation failed", "member_id", memberID, "err", err)
	}
}
