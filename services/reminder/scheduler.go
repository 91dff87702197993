package reminder

import (
	"context"
	"fmt"
	"time"

	"bookwise/models"
	"bookwise/utils"

	"go.uber.org/zap"
)

// Scheduler turns booking mutations into queue operations.
type Scheduler struct {
	queue Queue
	lead  time.Duration
	now   func() time.Time
}

func NewScheduler(queue Queue, lead time.Duration) *Scheduler {
	return &Scheduler{queue: queue, lead: lead, now: time.Now}
}

// FireTime is when the reminder for a booking starting at start is due.
func (s *Scheduler) FireTime(start time.Time) time.Time {
	return start.Add(-s.lead)
}

// Schedule replaces any pending reminder of the booking with one due at
// start minus the lead. A fire time that is not in the future schedules nothing.
func (s *Scheduler) Schedule(ctx context.Context, bookingID, userID, title string, startTime time.Time) error {
	fireAt := s.FireTime(startTime)
	if !fireAt.After(s.now()) {
		utils.GetLogger().Debug("Reminder not scheduled, fire time already passed",
			zap.String("bookingId", bookingID), zap.Time("fireAt", fireAt))
		return nil
	}

	if err := s.queue.Cancel(ctx, bookingID); err != nil {
		utils.GetLogger().Error("Reminder not scheduled, previous job could not be removed",
			zap.String("bookingId", bookingID), zap.String("userId", userID),
			zap.Time("startTime", startTime), zap.Time("fireAt", fireAt), zap.Error(err))
		return fmt.Errorf("replace reminder: %w", err)
	}

	payload := models.ReminderPayload{
		BookingID:       bookingID,
		UserID:          userID,
		Title:           title,
		StartTime:       startTime,
		ReminderMessage: fmt.Sprintf(`Your booking "%s" starts in %d minutes`, title, int(s.lead.Minutes())),
	}
	if err := s.queue.Enqueue(ctx, payload, fireAt); err != nil {
		return err
	}
	utils.GetLogger().Info("Reminder scheduled",
		zap.String("bookingId", bookingID), zap.Time("fireAt", fireAt))
	return nil
}

func (s *Scheduler) Cancel(ctx context.Context, bookingID string) error {
	return s.queue.Cancel(ctx, bookingID)
}
