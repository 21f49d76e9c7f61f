package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func respondScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start must be before end"})
	case errors.Is(err, ErrInvalidCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity must be positive and fit the room"})
	case errors.Is(err, ErrTrainerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
	case errors.Is(err, ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, ErrRoomConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Room already booked for that time"})
	case errors.Is(err, ErrTrainerConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Trainer already has a session at that time"})
	case errors.Is(err, ErrTrainerUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Trainer not available in that time window"})
	case errors.Is(err, ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable, try again later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking"})
	}
}

// CreateClassSession godoc
// @Summary      Create class session
// @Description  Schedules a class after room and trainer conflict checks. Admin only.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateClassSessionRequest  true  "Class session data"
// @Success      201      {object}  ClassSession
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      503      {object}  gin.H
// @Router       /admin/classes [post]
func (h *Handler) CreateClassSession(c *gin.Context) {
	var req CreateClassSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.CreateClassSession(c.Request.Context(), req)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// BookPTSession godoc
// @Summary      Book personal training session
// @Description  Books a PT session for the authenticated member; the interval must fit inside one availability window of the trainer.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePTSessionRequest  true  "PT session data"
// @Success      201      {object}  PTSession
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      503      {object}  gin.H
// @Router       /sessions/pt [post]
func (h *Handler) BookPTSession(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePTSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.CreatePTSession(c.Request.Context(), memberID, req)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// MySchedule godoc
// @Summary      My schedule
// @Description  Returns the authenticated trainer's SCHEDULED sessions, classes and PT together.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ScheduledSession
// @Failure      500  {object}  gin.H
// @Router       /my/schedule [get]
func (h *Handler) MySchedule(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	sessions, err := h.service.ListScheduledSessions(c.Request.Context(), ResourceTrainer, trainerID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ListScheduledSessions godoc
// @Summary      List scheduled sessions for a resource
// @Description  Read surface for status-management collaborators: SCHEDULED sessions bound to a trainer or room. Admin only.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        kind  path      string  true  "Resource kind (trainer or room)"
// @Param        id    path      int     true  "Resource ID"
// @Success      200   {array}   ScheduledSession
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /admin/resources/{kind}/{id}/sessions [get]
func (h *Handler) ListScheduledSessions(c *gin.Context) {
	kind := ResourceKind(c.Param("kind"))
	if kind != ResourceTrainer && kind != ResourceRoom {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resource kind must be 'trainer' or 'room'"})
		return
	}

	resourceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	sessions, err := h.service.ListScheduledSessions(c.Request.Context(), kind, resourceID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// UpdateSessionStatus godoc
// @Summary      Update session status
// @Description  Operator cancellation/completion. Sessions leaving SCHEDULED stop blocking new bookings. Admin only.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind       path      string                      true  "Session kind (class or pt)"
// @Param        sessionID  path      int                         true  "Session ID"
// @Param        request    body      UpdateSessionStatusRequest  true  "New status"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/sessions/{kind}/{sessionID}/status [post]
func (h *Handler) UpdateSessionStatus(c *gin.Context) {
	kind := SessionKind(c.Param("kind"))
	if kind != KindClass && kind != KindPT {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session kind must be 'class' or 'pt'"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var req UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be SCHEDULED, CANCELLED or COMPLETED"})
		return
	}

	if err := h.service.UpdateSessionStatus(c.Request.Context(), SessionRef{Kind: kind, ID: sessionID}, req.Status); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session status updated"})
}
