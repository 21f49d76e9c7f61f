package health

import (
	"net/http"

	"gymdesk/internal/auth"
	"gymdesk/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RecordMetric godoc
// @Summary      Record health metric
// @Description  Stores a weight/body-fat/heart-rate reading for the authenticated member.
// @Tags         health
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RecordMetricRequest  true  "Metric data"
// @Success      201      {object}  Metric
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /my/health [post]
func (h *Handler) RecordMetric(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req RecordMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metric, err := h.repo.RecordMetric(c.Request.Context(), memberID, req)
	if err != nil {
		logger.Error("failed to record health metric", "member_id", memberID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record metric"})
		return
	}

	c.JSON(http.StatusCreated, metric)
}

// ListMyMetrics godoc
// @Summary      List my health metrics
// @Description  Returns the authenticated member's readings, newest first.
// @Tags         health
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Metric
// @Failure      500  {object}  gin.H
// @Router       /my/health [get]
func (h *Handler) ListMyMetrics(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	metrics, err := h.repo.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		logger.Error("failed to list health metrics", "member_id", memberID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list metrics"})
		return
	}

	if metrics == nil {
		metrics = []Metric{}
	}

	c.JSON(http.StatusOK, metrics)
}
