package bookingRepo

import (
	"context"
	"errors"
	"time"

	"bookwise/models"
)

// ErrNotFound is returned when no booking matches the id (and owner, where scoped).
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines owner-scoped booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// Update replaces the stored booking. ErrNotFound when the id/owner pair is gone.
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id, userID string) error
	GetByID(ctx context.Context, id, userID string) (*models.Booking, error)

	// FindOverlapping returns the owner's scheduled bookings intersecting [start, end),
	// ignoring excludeID when it is non-empty.
	FindOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID string) ([]models.Booking, error)

	ListUpcoming(ctx context.Context, userID string, now time.Time, limit int) ([]models.Booking, error)
	ListPast(ctx context.Context, userID string, now time.Time, limit int) ([]models.Booking, error)
	ListAll(ctx context.Context, userID string, skip, limit int) ([]models.Booking, int64, error)
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Booking, error)

	ReminderStore
}

// ReminderStore is the narrow view the reminder worker needs: it reads a booking
// regardless of owner and flips its reminder flag, nothing else.
type ReminderStore interface {
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	MarkReminderSent(ctx context.Context, id string) error
}
