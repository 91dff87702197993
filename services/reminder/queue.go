package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookwise/models"
	"bookwise/services/tasks"

	"github.com/hibiken/asynq"
)

// Queue is the delayed-job queue as seen by the scheduler. Jobs are keyed by
// booking id; at most one exists per booking.
type Queue interface {
	Enqueue(ctx context.Context, payload models.ReminderPayload, processAt time.Time) error
	// Cancel removes the booking's job. Missing jobs are not an error.
	Cancel(ctx context.Context, bookingID string) error
}

// AsynqQueue implements Queue on asynq.
type AsynqQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
	retention time.Duration
}

func NewAsynqQueue(client *asynq.Client, inspector *asynq.Inspector, queue string, retention time.Duration) *AsynqQueue {
	return &AsynqQueue{client: client, inspector: inspector, queue: queue, retention: retention}
}

func (q *AsynqQueue) Enqueue(ctx context.Context, payload models.ReminderPayload, processAt time.Time) error {
	task, opts, err := tasks.NewReminderTask(payload, processAt, q.queue, q.retention)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder for booking %s: %w", payload.BookingID, err)
	}
	return nil
}

func (q *AsynqQueue) Cancel(_ context.Context, bookingID string) error {
	err := q.inspector.DeleteTask(q.queue, tasks.ReminderTaskID(bookingID))
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("cancel reminder for booking %s: %w", bookingID, err)
}
