package booking

import (
	"context"
	"time"

	"bookwise/models"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	}
	return limit
}

func (s *DefaultBookingService) ListUpcoming(ctx context.Context, ownerID string, limit int) ([]models.Booking, error) {
	bookings, err := s.repo.ListUpcoming(ctx, ownerID, s.now().UTC(), clampLimit(limit))
	if err != nil {
		return nil, transient("list upcoming bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListPast(ctx context.Context, ownerID string, limit int) ([]models.Booking, error) {
	bookings, err := s.repo.ListPast(ctx, ownerID, s.now().UTC(), clampLimit(limit))
	if err != nil {
		return nil, transient("list past bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListAll(ctx context.Context, ownerID string, page, pageSize int) (models.Page[models.Booking], error) {
	if page < 1 {
		page = 1
	}
	pageSize = clampLimit(pageSize)

	bookings, total, err := s.repo.ListAll(ctx, ownerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return models.Page[models.Booking]{}, transient("list bookings", err)
	}
	return models.NewPage(bookings, pageSize, page, total), nil
}

func (s *DefaultBookingService) ListByDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.Booking, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, invalidTimeRange("to", "range end must not be before range start")
	}
	bookings, err := s.repo.ListByDateRange(ctx, ownerID, from.UTC(), to.UTC())
	if err != nil {
		return nil, transient("list bookings by date range", err)
	}
	return bookings, nil
}
