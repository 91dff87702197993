package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"bookwise/middleware"
	"bookwise/models"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// PushSubscriber joins a user's push room.
type PushSubscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan models.PushMessage, error)
}

type NotificationHandler struct {
	Rooms PushSubscriber
}

func NewNotificationHandler(rooms PushSubscriber) *NotificationHandler {
	return &NotificationHandler{Rooms: rooms}
}

// Stream relays the caller's room as server-sent events until the client leaves.
func (h *NotificationHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	msgs, err := h.Rooms.Subscribe(ctx, middleware.CurrentUserID(c))
	if err != nil {
		getLogger(c).Error("Push subscription failed", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Notifications unavailable", "")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-msgs:
			if !ok {
				return false
			}
			c.SSEvent(msg.Type, msg)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"timestamp": time.Now().UTC()})
			return true
		}
	})
}
