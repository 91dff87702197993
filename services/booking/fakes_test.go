package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	bookingRepo "bookwise/database/repository/booking"
	"bookwise/models"
)

// memRepo is an in-memory BookingRepository with the same query semantics as
// the Mongo one.
type memRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	failNext error
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: map[string]models.Booking{}}
}

func (r *memRepo) fail() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *memRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memRepo) Update(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	cur, ok := r.bookings[b.ID]
	if !ok || cur.UserID != b.UserID {
		return bookingRepo.ErrNotFound
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.bookings[id]
	if !ok || cur.UserID != userID {
		return bookingRepo.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id, userID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) MarkReminderSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.ReminderSent = true
	r.bookings[id] = b
	return nil
}

func (r *memRepo) FindOverlapping(_ context.Context, userID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool {
		return b.UserID == userID && b.Status == models.StatusScheduled && b.ID != excludeID && b.Overlaps(start, end)
	}, nil), nil
}

func (r *memRepo) ListUpcoming(_ context.Context, userID string, now time.Time, limit int) ([]models.Booking, error) {
	out := r.filter(func(b models.Booking) bool {
		return b.UserID == userID && b.Status == models.StatusScheduled && b.StartTime.After(now)
	}, func(a, b models.Booking) bool { return a.StartTime.Before(b.StartTime) })
	return head(out, limit), nil
}

func (r *memRepo) ListPast(_ context.Context, userID string, now time.Time, limit int) ([]models.Booking, error) {
	out := r.filter(func(b models.Booking) bool {
		return b.UserID == userID && b.EndTime.Before(now)
	}, func(a, b models.Booking) bool { return a.EndTime.After(b.EndTime) })
	return head(out, limit), nil
}

func (r *memRepo) ListAll(_ context.Context, userID string, skip, limit int) ([]models.Booking, int64, error) {
	out := r.filter(func(b models.Booking) bool { return b.UserID == userID },
		func(a, b models.Booking) bool { return a.StartTime.Before(b.StartTime) })
	total := int64(len(out))
	if skip >= len(out) {
		return []models.Booking{}, total, nil
	}
	return head(out[skip:], limit), total, nil
}

func (r *memRepo) ListByDateRange(_ context.Context, userID string, from, to time.Time) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool {
		return b.UserID == userID && !b.StartTime.Before(from) && !b.StartTime.After(to)
	}, func(a, b models.Booking) bool { return a.StartTime.Before(b.StartTime) }), nil
}

func (r *memRepo) filter(keep func(models.Booking) bool, less func(a, b models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	if less != nil {
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func head(in []models.Booking, n int) []models.Booking {
	if len(in) > n {
		return in[:n]
	}
	return in
}

type queuedJob struct {
	payload   models.ReminderPayload
	processAt time.Time
}

// memQueue implements reminder.Queue.
type memQueue struct {
	mu         sync.Mutex
	jobs       map[string]queuedJob
	enqueueErr error
}

func newMemQueue() *memQueue {
	return &memQueue{jobs: map[string]queuedJob{}}
}

func (q *memQueue) Enqueue(ctx context.Context, p models.ReminderPayload, at time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	if _, ok := q.jobs[p.BookingID]; ok {
		return errors.New("duplicate reminder job")
	}
	q.jobs[p.BookingID] = queuedJob{payload: p, processAt: at}
	return nil
}

func (q *memQueue) Cancel(_ context.Context, bookingID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.jobs, bookingID)
	return nil
}

func (q *memQueue) job(bookingID string) (queuedJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[bookingID]
	return j, ok
}

type published struct {
	event string
	data  any
}

type memPublisher struct {
	events []published
	err    error
}

func (p *memPublisher) Publish(ctx context.Context, event string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{event, data})
	return nil
}

type pushed struct {
	userID, event string
}

type memChannel struct {
	pushes []pushed
	err    error
}

func (c *memChannel) PushToUser(ctx context.Context, userID, event string, _ any) error {
	if c.err != nil {
		return c.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.pushes = append(c.pushes, pushed{userID, event})
	return nil
}
