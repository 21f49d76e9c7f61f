package schedule

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/room"
	"gymdesk/internal/user"
)

// Notifier delivers best-effort booking confirmations; failures are
// logged, never surfaced to the booking caller.
type Notifier interface {
	BookingConfirmed(ctx context.Context, email, name, what string, start time.Time) error
}

type Service interface {
	CreateClassSession(ctx context.Context, req CreateClassSessionRequest) (*ClassSession, error)
	CreatePTSession(ctx context.Context, memberID int, req CreatePTSessionRequest) (*PTSession, error)
	ListScheduledSessions(ctx context.Context, kind ResourceKind, resourceID int) ([]ScheduledSession, error)
	UpdateSessionStatus(ctx context.Context, ref SessionRef, status SessionStatus) error
}

type service struct {
	repo     Repository
	roomRepo room.Repository
	userRepo user.Repository
	notifier Notifier
}

func NewService(repo Repository, roomRepo room.Repository, userRepo user.Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		roomRepo: roomRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *service) CreateClassSession(ctx context.Context, req CreateClassSessionRequest) (*ClassSession, error) {
	iv, err := NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		metrics.RecordBookingRejection("invalid_interval")
		return nil, err
	}

	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	roomCapacity, err := s.roomRepo.GetRoomCapacity(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, storageErr(err)
	}

	// An explicit session capacity cannot outgrow the room it runs in.
	if req.Capacity != nil && *req.Capacity > roomCapacity {
		return nil, ErrInvalidCapacity
	}

	if err := s.trainerExists(ctx, req.TrainerID); err != nil {
		return nil, err
	}

	session, err := s.repo.CreateClassSession(ctx, CreateClassSessionParams{
		ClassTypeID: req.ClassTypeID,
		TrainerID:   req.TrainerID,
		RoomID:      req.RoomID,
		Interval:    iv,
		Capacity:    req.Capacity,
	})
	if err != nil {
		recordRejection(err)
		if IsFeasibilityRejection(err) {
			logger.Info("class session rejected",
				"trainer_id", req.TrainerID, "room_id", req.RoomID, "reason", err)
		}
		return nil, err
	}

	metrics.RecordSessionCreated(string(KindClass))
	logger.Info("class session scheduled",
		"session_id", session.ID, "trainer_id", session.TrainerID, "room_id", session.RoomID)

	return session, nil
}

func (s *service) CreatePTSession(ctx context.Context, memberID int, req CreatePTSessionRequest) (*PTSession, error) {
	iv, err := NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		metrics.RecordBookingRejection("invalid_interval")
		return nil, err
	}

	if err := s.trainerExists(ctx, req.TrainerID); err != nil {
		return nil, err
	}

	if _, err := s.roomRepo.GetRoomByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, storageErr(err)
	}

	session, err := s.repo.CreatePTSession(ctx, CreatePTSessionParams{
		MemberID:  memberID,
		TrainerID: req.TrainerID,
		RoomID:    req.RoomID,
		Interval:  iv,
	})
	if err != nil {
		recordRejection(err)
		if IsFeasibilityRejection(err) {
			logger.Info("pt session rejected",
				"member_id", memberID, "trainer_id", req.TrainerID, "reason", err)
		}
		return nil, err
	}

	metrics.RecordSessionCreated(string(KindPT))
	logger.Info("pt session booked",
		"session_id", session.ID, "member_id", memberID, "trainer_id", session.TrainerID)

	s.confirmBooking(ctx, memberID, "Personal training session", session.StartTime)

	return session, nil
}

func (s *service) ListScheduledSessions(ctx context.Context, kind ResourceKind, resourceID int) ([]ScheduledSession, error) {
	return s.repo.ListScheduledSessions(ctx, kind, resourceID)
}

func (s *service) UpdateSessionStatus(ctx context.Context, ref SessionRef, status SessionStatus) error {
	if !status.Valid() {
		return errors.New("unknown session status: " + string(status))
	}
	return s.repo.UpdateSessionStatus(ctx, ref, status)
}

func (s *service) trainerExists(ctx context.Context, trainerID int) error {
	isTrainer, err := s.userRepo.ExistsWithRole(ctx, trainerID, auth.RoleTrainer)
	if err != nil {
		return storageErr(err)
	}
	if !isTrainer {
		return ErrTrainerNotFound
	}
	return nil
}

func (s *service) confirmBooking(ctx context.Context, memberID int, what string, start time.Time) {
	if s.notifier == nil {
		return
	}

	member, err := s.userRepo.FindByID(ctx, memberID)
	if err != nil {
		logger.Error("booking confirmation skipped", "member_id", memberID, "err", err)
		return
	}

	if err := s.notifier.BookingConfirmed(ctx, member.Email, member.Name, what, start); err != nil {
		logger.Error("booking confirmation failed", "member_id", memberID, "err", err)
	}
}

func recordRejection(err error) {
	switch {
	case errors.Is(err, ErrTrainerConflict):
		metrics.RecordBookingRejection("trainer_conflict")
	case errors.Is(err, ErrRoomConflict):
		metrics.RecordBookingRejection("room_conflict")
	case errors.Is(err, ErrTrainerUnavailable):
		metrics.RecordBookingRejection("trainer_unavailable")
	}
}
