package registration

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

// Register godoc
// @Summary      Register for class
// @Description  Admits the authenticated member into a class session if a slot remains. A repeated registration succeeds without a duplicate.
// @Tags         registrations
// @Security     BearerAuth
// @Produce      json
// @Param        sessionID  path      int  true  "Class session ID"
// @Success      201        {object}  Registration
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /classes/{sessionID}/register [post]
func (h *Handler) Register(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	reg, err := h.service.Register(c.Request.Context(), memberID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Class session not found"})
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, ErrClassFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Class is full"})
		case errors.Is(err, ErrSessionNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "Class session is not open for registration"})
		case errors.Is(err, ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// ListMyRegistrations godoc
// @Summary      List my class registrations
// @Tags         registrations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   RegistrationWithDetails
// @Failure      500  {object}  gin.H
// @Router       /my/registrations [get]
func (h *Handler) ListMyRegistrations(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	regs, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, regs)
}
