package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "bookwise/database/repository/booking"
	"bookwise/models"
)

type queuedJob struct {
	payload   models.ReminderPayload
	processAt time.Time
}

type fakeQueue struct {
	mu         sync.Mutex
	jobs       map[string]queuedJob
	cancels    []string
	enqueueErr error
	cancelErr  error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: map[string]queuedJob{}}
}

func (q *fakeQueue) Enqueue(_ context.Context, p models.ReminderPayload, at time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	if _, exists := q.jobs[p.BookingID]; exists {
		return errors.New("task id conflicts with another task")
	}
	q.jobs[p.BookingID] = queuedJob{payload: p, processAt: at}
	return nil
}

func (q *fakeQueue) Cancel(_ context.Context, bookingID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cancels = append(q.cancels, bookingID)
	if q.cancelErr != nil {
		return q.cancelErr
	}
	delete(q.jobs, bookingID)
	return nil
}

type fakeStore struct {
	bookings map[string]*models.Booking
	findErr  error
	marked   []string
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*models.Booking, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeStore) MarkReminderSent(_ context.Context, id string) error {
	s.marked = append(s.marked, id)
	if b, ok := s.bookings[id]; ok {
		b.ReminderSent = true
	}
	return nil
}

type push struct {
	userID, event string
	payload       any
}

type fakeChannel struct {
	pushes []push
	err    error
}

func (c *fakeChannel) PushToUser(_ context.Context, userID, event string, payload any) error {
	if c.err != nil {
		return c.err
	}
	c.pushes = append(c.pushes, push{userID, event, payload})
	return nil
}
