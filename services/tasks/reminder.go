package tasks

import (
	"encoding/json"
	"time"

	"bookwise/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking-reminder"

// ReminderTaskID is the deterministic queue identity of a booking's reminder.
func ReminderTaskID(bookingID string) string {
	return TypeBookingReminder + ":" + bookingID
}

// NewReminderTask builds the reminder task and the options that pin its identity,
// queue, fire time and how long a finished task stays inspectable.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time, queue string, retention time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.TaskID(ReminderTaskID(payload.BookingID)),
		asynq.Queue(queue),
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(0),
		asynq.Retention(retention),
	}
	return task, opts, nil
}

func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
