package models

import "time"

// ReminderPayload is the body of a queued booking-reminder task.
type ReminderPayload struct {
	BookingID       string    `json:"bookingId"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"startTime"`
	ReminderMessage string    `json:"reminderMessage"`
}

// JobResult describes one execution attempt of a queued job.
type JobResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// QueueStats counts reminder tasks per state.
type QueueStats struct {
	Waiting   int `json:"waiting"`
	Active    int `json:"active"`
	Delayed   int `json:"delayed"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

type FailedJob struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Data         ReminderPayload `json:"data"`
	FailedReason string          `json:"failedReason"`
	FailedAt     time.Time       `json:"failedAt"`
}

type JobMetrics struct {
	Stats          QueueStats  `json:"stats"`
	RecentFailures []FailedJob `json:"recentFailures"`
	Timestamp      time.Time   `json:"timestamp"`
}

type CleanupResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Removed   int       `json:"removed"`
	Timestamp time.Time `json:"timestamp"`
}
