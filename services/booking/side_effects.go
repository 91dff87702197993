package booking

import (
	"context"

	"bookwise/models"
	"bookwise/utils"

	"go.uber.org/zap"
)

// The helpers below run after a successful write. Their failures are logged and
// never reach the caller. They detach from the request's cancellation so a client
// that disconnects after the write still gets its reminder.

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking) {
	ctx = context.WithoutCancel(ctx)
	if s.reminders == nil {
		return
	}
	if err := s.reminders.Schedule(ctx, b.ID, b.UserID, b.Title, b.StartTime); err != nil {
		utils.GetLogger().Error("Failed to schedule booking reminder",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) cancelReminder(ctx context.Context, bookingID string) {
	ctx = context.WithoutCancel(ctx)
	if s.reminders == nil {
		return
	}
	if err := s.reminders.Cancel(ctx, bookingID); err != nil {
		utils.GetLogger().Warn("Failed to cancel booking reminder",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
}

// announce emits the lifecycle event and pushes it to the owner's sessions.
func (s *DefaultBookingService) announce(ctx context.Context, event string, data any) {
	ctx = context.WithoutCancel(ctx)
	userID := ""
	switch v := data.(type) {
	case *models.Booking:
		userID = v.UserID
	case map[string]string:
		userID = v["userId"]
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, event, data); err != nil {
			utils.GetLogger().Warn("Failed to publish booking event",
				zap.String("event", event), zap.Error(err))
		}
	}
	if s.push != nil && userID != "" {
		if err := s.push.PushToUser(ctx, userID, event, data); err != nil {
			utils.GetLogger().Warn("Failed to push booking notification",
				zap.String("event", event), zap.String("userId", userID), zap.Error(err))
		}
	}
}
