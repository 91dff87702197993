package booking

import (
	"context"
	"time"

	bookingRepo "bookwise/database/repository/booking"
	"bookwise/models"
	"bookwise/services/events"
	"bookwise/services/notification"
)

// BookingService owns the booking lifecycle and the per-user no-overlap rule.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.CreateBookingInput, ownerID string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id, ownerID string, patch models.UpdateBookingInput) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, ownerID string, status models.BookingStatus) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id, ownerID string) error
	GetBooking(ctx context.Context, id, ownerID string) (*models.Booking, error)

	ListUpcoming(ctx context.Context, ownerID string, limit int) ([]models.Booking, error)
	ListPast(ctx context.Context, ownerID string, limit int) ([]models.Booking, error)
	ListAll(ctx context.Context, ownerID string, page, pageSize int) (models.Page[models.Booking], error)
	ListByDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.Booking, error)
}

// ReminderScheduler is the queue side of a booking mutation.
type ReminderScheduler interface {
	Schedule(ctx context.Context, bookingID, userID, title string, startTime time.Time) error
	Cancel(ctx context.Context, bookingID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	repo       bookingRepo.BookingRepository
	reminders  ReminderScheduler
	events     events.Publisher
	push       notification.NotificationChannel
	leadWindow time.Duration
	now        func() time.Time
}

func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	reminders ReminderScheduler,
	publisher events.Publisher,
	push notification.NotificationChannel,
	leadWindow time.Duration,
) *DefaultBookingService {
	return &DefaultBookingService{
		repo:       repo,
		reminders:  reminders,
		events:     publisher,
		push:       push,
		leadWindow: leadWindow,
		now:        time.Now,
	}
}
