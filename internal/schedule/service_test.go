package schedule

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/auth"
	"gymdesk/internal/logger"
	"gymdesk/internal/room"
	"gymdesk/internal/user"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateClassSession(ctx context.Context, p CreateClassSessionParams) (*ClassSession, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassSession), args.Error(1)
}

func (m *mockRepo) CreatePTSession(ctx context.Context, p CreatePTSessionParams) (*PTSession, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PTSession), args.Error(1)
}

func (m *mockRepo) HasConflict(ctx context.Context, kind ResourceKind, resourceID int, interval Interval, exclude *SessionRef) (bool, error) {
	args := m.Called(ctx, kind, resourceID, interval, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) GetClassSession(ctx context.Context, id int) (*ClassSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassSession), args.Error(1)
}

func (m *mockRepo) ListScheduledSessions(ctx context.Context, kind ResourceKind, resourceID int) ([]ScheduledSession, error) {
	args := m.Called(ctx, kind, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScheduledSession), args.Error(1)
}

func (m *mockRepo) UpdateSessionStatus(ctx context.Context, ref SessionRef, status SessionStatus) error {
	args := m.Called(ctx, ref, status)
	return args.Error(0)
}

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) CreateRoom(ctx context.Context, name string, capacity int) (*room.Room, error) {
	args := m.Called(ctx, name, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *mockRoomRepo) GetRoomByID(ctx context.Context, id int) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *mockRoomRepo) GetRoomCapacity(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockRoomRepo) ListRooms(ctx context.Context) ([]room.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]room.Room), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*user.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsWithRole(ctx context.Context, id int, role string) (bool, error) {
	args := m.Called(ctx, id, role)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BookingConfirmed(ctx context.Context, email, name, what string, start time.Time) error {
	args := m.Called(ctx, email, name, what, start)
	return args.Error(0)
}

func newTestService(t *testing.T) (Service, *mockRepo, *mockRoomRepo, *mockUserRepo, *mockNotifier) {
	repo := new(mockRepo)
	roomRepo := new(mockRoomRepo)
	userRepo := new(mockUserRepo)
	notifier := new(mockNotifier)
	return NewService(repo, roomRepo, userRepo, notifier), repo, roomRepo, userRepo, notifier
}

func classRequest(t *testing.T, startMin, endMin int) CreateClassSessionRequest {
	interval := iv(t, startMin, endMin)
	return CreateClassSessionRequest{
		ClassTypeID: 1,
		TrainerID:   2,
		RoomID:      3,
		StartTime:   interval.Start,
		EndTime:     interval.End,
	}
}

func TestCreateClassSession_InvalidInterval(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)

	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateClassSession(context.Background(), CreateClassSessionRequest{
		ClassTypeID: 1,
		TrainerID:   2,
		RoomID:      3,
		StartTime:   start,
		EndTime:     start,
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)
	repo.AssertNotCalled(t, "CreateClassSession", mock.Anything, mock.Anything)
}

func TestCreateClassSession_RejectsZeroCapacity(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)

	req := classRequest(t, 540, 600)
	zero := 0
	req.Capacity = &zero

	_, err := svc.CreateClassSession(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	repo.AssertNotCalled(t, "CreateClassSession", mock.Anything, mock.Anything)
}

func TestCreateClassSession_RoomMissing(t *testing.T) {
	svc, _, roomRepo, _, _ := newTestService(t)

	roomRepo.On("GetRoomCapacity", mock.Anything, 3).Return(0, room.ErrRoomNotFound)

	_, err := svc.CreateClassSession(context.Background(), classRequest(t, 540, 600))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateClassSession_CapacityExceedsRoom(t *testing.T) {
	svc, repo, roomRepo, _, _ := newTestService(t)

	req := classRequest(t, 540, 600)
	oversized := 30
	req.Capacity = &oversized

	roomRepo.On("GetRoomCapacity", mock.Anything, 3).Return(20, nil)

	_, err := svc.CreateClassSession(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	repo.AssertNotCalled(t, "CreateClassSession", mock.Anything, mock.Anything)
}

func TestCreateClassSession_TrainerMissing(t *testing.T) {
	svc, _, roomRepo, userRepo, _ := newTestService(t)

	roomRepo.On("GetRoomCapacity", mock.Anything, 3).Return(20, nil)
	userRepo.On("ExistsWithRole", mock.Anything, 2, auth.RoleTrainer).Return(false, nil)

	_, err := svc.CreateClassSession(context.Background(), classRequest(t, 540, 600))
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestCreateClassSession_PropagatesConflict(t *testing.T) {
	svc, repo, roomRepo, userRepo, _ := newTestService(t)

	roomRepo.On("GetRoomCapacity", mock.Anything, 3).Return(20, nil)
	userRepo.On("ExistsWithRole", mock.Anything, 2, auth.RoleTrainer).Return(true, nil)
	repo.On("CreateClassSession", mock.Anything, mock.Anything).Return(nil, ErrTrainerConflict)

	_, err := svc.CreateClassSession(context.Background(), classRequest(t, 540, 600))
	assert.ErrorIs(t, err, ErrTrainerConflict)
}

func TestCreateClassSession_Succeeds(t *testing.T) {
	svc, repo, roomRepo, userRepo, _ := newTestService(t)

	interval := iv(t, 540, 600)
	roomRepo.On("GetRoomCapacity", mock.Anything, 3).Return(20, nil)
	userRepo.On("ExistsWithRole", mock.Anything, 2, auth.RoleTrainer).Return(true, nil)
	repo.On("CreateClassSession", mock.Anything, CreateClassSessionParams{
		ClassTypeID: 1,
		TrainerID:   2,
		RoomID:      3,
		Interval:    interval,
	}).Return(&ClassSession{
		ID:        10,
		TrainerID: 2,
		RoomID:    3,
		StartTime: interval.Start,
		EndTime:   interval.End,
		Status:    StatusScheduled,
	}, nil)

	session, err := svc.CreateClassSession(context.Background(), classRequest(t, 540, 600))
	require.NoError(t, err)
	assert.Equal(t, 10, session.ID)
	repo.AssertExpectations(t)
}

func TestCreatePTSession_NotifiesMember(t *testing.T) {
	svc, repo, roomRepo, userRepo, notifier := newTestService(t)

	interval := iv(t, 600, 660)
	userRepo.On("ExistsWithRole", mock.Anything, 2, auth.RoleTrainer).Return(true, nil)
	roomRepo.On("GetRoomByID", mock.Anything, 3).Return(&room.Room{ID: 3, Capacity: 20}, nil)
	repo.On("CreatePTSession", mock.Anything, CreatePTSessionParams{
		MemberID:  7,
		TrainerID: 2,
		RoomID:    3,
		Interval:  interval,
	}).Return(&PTSession{
		ID:        20,
		MemberID:  7,
		TrainerID: 2,
		RoomID:    3,
		StartTime: interval.Start,
		EndTime:   interval.End,
		Status:    StatusScheduled,
	}, nil)
	userRepo.On("FindByID", mock.Anything, 7).
		Return(&user.User{ID: 7, Name: "Sam", Email: "sam@example.com"}, nil)
	notifier.On("BookingConfirmed", mock.Anything, "sam@example.com", "Sam", mock.Anything, interval.Start).
		Return(nil)

	session, err := svc.CreatePTSession(context.Background(), 7, CreatePTSessionRequest{
		TrainerID: 2,
		RoomID:    3,
		StartTime: interval.Start,
		EndTime:   interval.End,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, session.ID)
	notifier.AssertExpectations(t)
}

func TestCreatePTSession_OutsideAvailability(t *testing.T) {
	svc, repo, roomRepo, userRepo, notifier := newTestService(t)

	interval := iv(t, 600, 660)
	userRepo.On("ExistsWithRole", mock.Anything, 2, auth.RoleTrainer).Return(true, nil)
	roomRepo.On("GetRoomByID", mock.Anything, 3).Return(&room.Room{ID: 3, Capacity: 20}, nil)
	repo.On("CreatePTSession", mock.Anything, mock.Anything).Return(nil, ErrTrainerUnavailable)

	_, err := svc.CreatePTSession(context.Background(), 7, CreatePTSessionRequest{
		TrainerID: 2,
		RoomID:    3,
		StartTime: interval.Start,
		EndTime:   interval.End,
	})
	assert.ErrorIs(t, err, ErrTrainerUnavailable)
	notifier.AssertNotCalled(t, "BookingConfirmed",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSessionStatus_RejectsUnknownStatus(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)

	err := svc.UpdateSessionStatus(context.Background(), SessionRef{Kind: KindClass, ID: 10}, "PAUSED")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateSessionStatus", mock.Anything, mock.Anything, mock.Anything)
}
