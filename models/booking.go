package models

import "time"

type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusInProgress BookingStatus = "in-progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is one of the four booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a time window owned by exactly one user.
type Booking struct {
	ID           string        `bson:"id" json:"id"`
	UserID       string        `bson:"user_id" json:"userId"`
	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
	StartTime    time.Time     `bson:"start_time" json:"startTime"`
	EndTime      time.Time     `bson:"end_time" json:"endTime"`
	Status       BookingStatus `bson:"status" json:"status"`
	Location     string        `bson:"location,omitempty" json:"location,omitempty"`
	Notes        string        `bson:"notes,omitempty" json:"notes,omitempty"`
	ReminderSent bool          `bson:"reminder_sent" json:"reminderSent"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Overlaps uses half-open intervals: touching bookings do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// CreateBookingInput is the body of POST /api/booking.
type CreateBookingInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Status      BookingStatus `json:"status,omitempty"`
	Location    string        `json:"location,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// UpdateBookingInput is a partial update; nil fields are left untouched.
type UpdateBookingInput struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	StartTime   *time.Time     `json:"startTime,omitempty"`
	EndTime     *time.Time     `json:"endTime,omitempty"`
	Status      *BookingStatus `json:"status,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

type UpdateBookingStatusInput struct {
	Status BookingStatus `json:"status"`
}
