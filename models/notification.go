package models

import "time"

// Real-time and stream event names.
const (
	EventBookingCreated  = "booking.created"
	EventBookingUpdated  = "booking.updated"
	EventBookingDeleted  = "booking.deleted"
	EventBookingReminder = "booking.reminder"
)

// PushMessage is what a user's session receives on its room.
type PushMessage struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingEvent is the envelope published on the booking_event stream.
type BookingEvent struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}
