package registration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRegService struct {
	mock.Mock
}

func (m *mockRegService) Register(ctx context.Context, memberID, classSessionID int) (*Registration, error) {
	args := m.Called(ctx, memberID, classSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Registration), args.Error(1)
}

func (m *mockRegService) ListByMember(ctx context.Context, memberID int) ([]RegistrationWithDetails, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RegistrationWithDetails), args.Error(1)
}

func asMember(memberID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", memberID)
		c.Set("user_role", "member")
		c.Next()
	}
}

func setupRouter(svc Service, memberID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(svc)
	router.POST("/classes/:sessionID/register", asMember(memberID), handler.Register)
	router.GET("/my/registrations", asMember(memberID), handler.ListMyRegistrations)
	return router
}

func TestRegisterHandler_Created(t *testing.T) {
	svc := new(mockRegService)
	router := setupRouter(svc, 7)

	svc.On("Register", mock.Anything, 7, 5).
		Return(&Registration{ID: 30, MemberID: 7, ClassSessionID: 5}, nil)

	req := httptest.NewRequest("POST", "/classes/5/register", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var reg Registration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.Equal(t, 30, reg.ID)
}

func TestRegisterHandler_StorageDown(t *testing.T) {
	svc := new(mockRegService)
	router := setupRouter(svc, 7)

	svc.On("Register", mock.Anything, 7, 5).Return(nil, storageErr(errors.New("connection refused")))

	req := httptest.NewRequest("POST", "/classes/5/register", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRegisterHandler_ClassFull(t *testing.T) {
	svc := new(mockRegService)
	router := setupRouter(svc, 7)

	svc.On("Register", mock.Anything, 7, 5).Return(nil, ErrClassFull)

	req := httptest.NewRequest("POST", "/classes/5/register", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_SessionMissing(t *testing.T) {
	svc := new(mockRegService)
	router := setupRouter(svc, 7)

	svc.On("Register", mock.Anything, 7, 99).Return(nil, ErrSessionNotFound)

	req := httptest.NewRequest("POST", "/classes/99/register", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterHandler_BadSessionID(t *testing.T) {
	svc := new(mockRegService)
	router := setupRouter(svc, 7)

	req := httptest.NewRequest("POST", "/classes/abc/register", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestListMyRegistrationsHandler(t *testing.T) {
	svc := new(mockRegService)
	router := setupRouter(svc, 7)

	svc.On("ListByMember", mock.Anything, 7).Return([]RegistrationWithDetails{
		{
			Registration: Registration{ID: 30, MemberID: 7, ClassSessionID: 5},
			RoomName:     "Studio A",
			TrainerName:  "Alex",
		},
	}, nil)

	req := httptest.NewRequest("GET", "/my/registrations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var regs []RegistrationWithDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
	require.Len(t, regs, 1)
	assert.Equal(t, "Studio A", regs[0].RoomName)
}
