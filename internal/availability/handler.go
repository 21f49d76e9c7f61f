package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// AddWindow godoc
// @Summary      Add availability window
// @Description  Records a time range the authenticated trainer is willing to work. Overlapping windows are rejected, not merged.
// @Tags         availability
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      AddWindowRequest  true  "Window bounds"
// @Success      201      {object}  Window
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /availability [post]
func (h *Handler) AddWindow(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AddWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := h.service.AddWindow(c.Request.Context(), trainerID, req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Start must be before end"})
		case errors.Is(err, ErrWindowOverlap):
			c.JSON(http.StatusConflict, gin.H{"error": "Overlaps with existing availability"})
		case errors.Is(err, ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add availability"})
		}
		return
	}

	c.JSON(http.StatusCreated, window)
}

// CheckTrainer godoc
// @Summary      Check trainer availability
// @Description  Reports whether a single window of the trainer fully contains the given time range. A positive answer does not reserve the slot.
// @Tags         availability
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  query     int     true  "Trainer ID"
// @Param        start      query     string  true  "Range start (RFC3339)"
// @Param        end        query     string  true  "Range end (RFC3339)"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /trainers/availability [get]
func (h *Handler) CheckTrainer(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Query("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time"})
		return
	}

	iv, err := schedule.NewInterval(start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start must be before end"})
		return
	}

	available, err := h.service.Covers(c.Request.Context(), trainerID, iv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trainer_id": trainerID, "available": available})
}

// ListMyWindows godoc
// @Summary      List my availability
// @Tags         availability
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Window
// @Failure      500  {object}  gin.H
// @Router       /availability [get]
func (h *Handler) ListMyWindows(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	windows, err := h.service.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability"})
		return
	}

	c.JSON(http.StatusOK, windows)
}
