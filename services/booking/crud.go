package booking

import (
	"context"
	"errors"

	bookingRepo "bookwise/database/repository/booking"
	"bookwise/models"

	"github.com/google/uuid"
)

func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.CreateBookingInput, ownerID string) (*models.Booking, error) {
	now := s.now()
	if input.Status == "" {
		input.Status = models.StatusScheduled
	}

	err := validate(
		titleCheck(input.Title),
		locationCheck(input.Location),
		statusCheck(input.Status),
		orderCheck(input.StartTime, input.EndTime),
		leadWindowCheck(input.StartTime, now, s.leadWindow),
	)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoOverlap(ctx, ownerID, input.StartTime, input.EndTime, ""); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime.UTC(),
		EndTime:     input.EndTime.UTC(),
		Status:      input.Status,
		Location:    input.Location,
		Notes:       input.Notes,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, transient("create booking", err)
	}

	if booking.Status != models.StatusCancelled {
		s.scheduleReminder(ctx, booking)
	}
	s.announce(ctx, models.EventBookingCreated, booking)
	return booking, nil
}

func (s *DefaultBookingService) UpdateBooking(ctx context.Context, id, ownerID string, patch models.UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	var checks []check
	if patch.Title != nil {
		checks = append(checks, titleCheck(*patch.Title))
	}
	if patch.Location != nil {
		checks = append(checks, locationCheck(*patch.Location))
	}
	if patch.Status != nil {
		checks = append(checks, statusCheck(*patch.Status))
	}

	start, end := booking.StartTime, booking.EndTime
	if patch.StartTime != nil {
		start = patch.StartTime.UTC()
	}
	if patch.EndTime != nil {
		end = patch.EndTime.UTC()
	}
	startChanged := !start.Equal(booking.StartTime)
	timesChanged := startChanged || !end.Equal(booking.EndTime)
	if timesChanged {
		checks = append(checks, orderCheck(start, end))
	}
	if err := validate(checks...); err != nil {
		return nil, err
	}

	if timesChanged {
		if err := s.ensureNoOverlap(ctx, ownerID, start, end, booking.ID); err != nil {
			return nil, err
		}
	}

	applyPatch(booking, patch)
	booking.StartTime, booking.EndTime = start, end
	booking.UpdatedAt = s.now().UTC()
	if startChanged {
		booking.ReminderSent = false
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, transient("update booking", err)
	}

	switch {
	case booking.Status == models.StatusCancelled:
		s.cancelReminder(ctx, booking.ID)
	case startChanged:
		s.cancelReminder(ctx, booking.ID)
		s.scheduleReminder(ctx, booking)
	}
	s.announce(ctx, models.EventBookingUpdated, booking)
	return booking, nil
}

// UpdateStatus allows any transition between the four statuses.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, ownerID string, status models.BookingStatus) (*models.Booking, error) {
	if err := validate(statusCheck(status)); err != nil {
		return nil, err
	}
	booking, err := s.find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	booking.Status = status
	booking.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, transient("update booking status", err)
	}

	if status == models.StatusCancelled {
		s.cancelReminder(ctx, booking.ID)
	}
	s.announce(ctx, models.EventBookingUpdated, booking)
	return booking, nil
}

func (s *DefaultBookingService) DeleteBooking(ctx context.Context, id, ownerID string) error {
	booking, err := s.find(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, booking.ID, ownerID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrNotFound
		}
		return transient("delete booking", err)
	}

	s.cancelReminder(ctx, booking.ID)
	s.announce(ctx, models.EventBookingDeleted, map[string]string{"id": booking.ID, "userId": ownerID})
	return nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id, ownerID string) (*models.Booking, error) {
	return s.find(ctx, id, ownerID)
}

func (s *DefaultBookingService) find(ctx context.Context, id, ownerID string) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id, ownerID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, transient("find booking", err)
	}
	return booking, nil
}

func applyPatch(b *models.Booking, p models.UpdateBookingInput) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.Location != nil {
		b.Location = *p.Location
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
}
