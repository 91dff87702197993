package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bookwise/models"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultCleanupAge = 24 * time.Hour

// QueueMonitor is the read and housekeeping side of the reminder queue.
type QueueMonitor interface {
	Stats(ctx context.Context) (models.QueueStats, error)
	Metrics(ctx context.Context) (models.JobMetrics, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (models.CleanupResult, error)
	Health(ctx context.Context) (map[string]any, error)
}

type JobHandler struct {
	Monitor QueueMonitor
}

func NewJobHandler(monitor QueueMonitor) *JobHandler {
	return &JobHandler{Monitor: monitor}
}

func (h *JobHandler) Info(c *gin.Context) {
	c.String(http.StatusOK, "Booking reminder worker is running")
}

func (h *JobHandler) Health(c *gin.Context) {
	status, err := h.Monitor.Health(c.Request.Context())
	if err != nil {
		getLogger(c).Warn("Job queue unhealthy", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *JobHandler) Metrics(c *gin.Context) {
	metrics, err := h.Monitor.Metrics(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Failed to read job metrics", err.Error())
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *JobHandler) QueueStats(c *gin.Context) {
	stats, err := h.Monitor.Stats(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Failed to read queue stats", err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Cleanup purges finished and failed jobs older than maxAge milliseconds.
func (h *JobHandler) Cleanup(c *gin.Context) {
	olderThan := defaultCleanupAge
	if raw := c.Query("maxAge"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			utils.JSONError(c, http.StatusBadRequest, "maxAge must be a non-negative number of milliseconds", raw)
			return
		}
		olderThan = time.Duration(ms) * time.Millisecond
	}
	res, err := h.Monitor.Cleanup(c.Request.Context(), olderThan)
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Job cleanup failed", err.Error())
		return
	}
	getLogger(c).Info("Job cleanup finished", zap.Int("removed", res.Removed), zap.Duration("olderThan", olderThan))
	c.JSON(http.StatusOK, res)
}
