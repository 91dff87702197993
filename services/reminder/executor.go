package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "bookwise/database/repository/booking"
	"bookwise/models"
	"bookwise/services/notification"
	"bookwise/services/tasks"
	"bookwise/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Executor delivers due reminders. It reads bookings through ReminderStore only
// and never creates, reschedules or deletes them.
type Executor struct {
	store bookingRepo.ReminderStore
	push  notification.NotificationChannel
	lead  time.Duration
	now   func() time.Time
}

func NewExecutor(store bookingRepo.ReminderStore, push notification.NotificationChannel, lead time.Duration) *Executor {
	return &Executor{store: store, push: push, lead: lead, now: time.Now}
}

// Execute runs one reminder job. It never panics out and never returns an error;
// the outcome is carried by the JobResult.
func (e *Executor) Execute(ctx context.Context, p models.ReminderPayload) (result models.JobResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failed(p, fmt.Errorf("panic: %v", r))
		}
	}()

	booking, err := e.store.FindByID(ctx, p.BookingID)
	switch {
	case errors.Is(err, bookingRepo.ErrNotFound):
		return skipped(p, "booking no longer exists")
	case err != nil:
		return failed(p, fmt.Errorf("look up booking: %w", err))
	case booking.Status == models.StatusCancelled:
		return skipped(p, "booking was cancelled")
	case booking.ReminderSent:
		return skipped(p, "reminder already sent")
	case rescheduled(p, booking):
		return skipped(p, "booking was rescheduled")
	}

	message := fmt.Sprintf(`"%s" starts in %d minutes`, booking.Title, int(e.lead.Minutes()))
	payload := map[string]any{
		"bookingId": booking.ID,
		"title":     booking.Title,
		"startTime": booking.StartTime,
		"message":   message,
	}
	if err := e.push.PushToUser(ctx, booking.UserID, models.EventBookingReminder, payload); err != nil {
		return failed(p, fmt.Errorf("deliver reminder: %w", err))
	}

	if err := e.store.MarkReminderSent(ctx, booking.ID); err != nil {
		utils.GetLogger().Warn("Failed to mark reminder sent",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	return models.JobResult{
		Success: true,
		Message: "Reminder sent",
		Data: map[string]any{
			"bookingId": booking.ID,
			"userId":    booking.UserID,
			"sentAt":    e.now().UTC(),
		},
	}
}

// ProcessTask makes Executor an asynq.Handler. A failed result archives the task
// without retrying.
func (e *Executor) ProcessTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	p, err := tasks.ParseReminderPayload(task)
	if err != nil {
		logger.Error("Invalid reminder payload", zap.Error(err))
		return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	result := e.Execute(ctx, p)
	fields := []zap.Field{
		zap.String("bookingId", p.BookingID),
		zap.String("userId", p.UserID),
		zap.Bool("success", result.Success),
		zap.String("message", result.Message),
	}
	if !result.Success {
		logger.Error("Reminder job failed", append(fields, zap.String("error", result.Error))...)
		return fmt.Errorf("%s: %w", result.Error, asynq.SkipRetry)
	}
	logger.Info("Reminder job done", fields...)
	return nil
}

// rescheduled reports whether the job was built for an earlier start time. Mongo
// keeps millisecond precision, so both sides are truncated before comparing.
func rescheduled(p models.ReminderPayload, b *models.Booking) bool {
	if p.StartTime.IsZero() {
		return false
	}
	return !p.StartTime.Truncate(time.Millisecond).Equal(b.StartTime.Truncate(time.Millisecond))
}

func skipped(p models.ReminderPayload, reason string) models.JobResult {
	return models.JobResult{
		Success: true,
		Message: "Reminder skipped: " + reason,
		Data: map[string]any{
			"bookingId": p.BookingID,
			"userId":    p.UserID,
			"skipped":   true,
		},
	}
}

func failed(p models.ReminderPayload, err error) models.JobResult {
	return models.JobResult{
		Success: false,
		Message: "Failed to send reminder",
		Data: map[string]any{
			"bookingId": p.BookingID,
			"userId":    p.UserID,
		},
		Error: err.Error(),
	}
}
