package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookwise/models"
)

func TestSchedulerSchedule(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		wantJobs int
	}{
		{"start in 20 minutes", now.Add(20 * time.Minute), 1},
		{"start in 5 minutes", now.Add(5 * time.Minute), 0},
		{"fire time exactly now", now.Add(10 * time.Minute), 0},
		{"start tomorrow", now.Add(24 * time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newFakeQueue()
			s := &Scheduler{queue: q, lead: 10 * time.Minute, now: func() time.Time { return now }}

			if err := s.Schedule(context.Background(), "b1", "u1", "Standup", tt.start); err != nil {
				t.Fatalf("Schedule() error = %v", err)
			}
			if len(q.jobs) != tt.wantJobs {
				t.Fatalf("jobs = %v, want %v", len(q.jobs), tt.wantJobs)
			}
			if tt.wantJobs == 1 {
				job := q.jobs["b1"]
				if want := tt.start.Add(-10 * time.Minute); !job.processAt.Equal(want) {
					t.Errorf("processAt = %v, want %v", job.processAt, want)
				}
				if job.payload.ReminderMessage != `Your booking "Standup" starts in 10 minutes` {
					t.Errorf("ReminderMessage = %v", job.payload.ReminderMessage)
				}
			}
		})
	}
}

func TestSchedulerReplacesExistingJob(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	q := newFakeQueue()
	s := &Scheduler{queue: q, lead: 10 * time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()

	if err := s.Schedule(ctx, "b1", "u1", "Standup", now.Add(time.Hour)); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	later := now.Add(3 * time.Hour)
	if err := s.Schedule(ctx, "b1", "u1", "Standup", later); err != nil {
		t.Fatalf("second Schedule() error = %v", err)
	}
	if len(q.jobs) != 1 {
		t.Fatalf("jobs = %v, want %v", len(q.jobs), 1)
	}
	if got := q.jobs["b1"].processAt; !got.Equal(later.Add(-10 * time.Minute)) {
		t.Errorf("processAt = %v, want %v", got, later.Add(-10*time.Minute))
	}
}

func TestSchedulerCancelIsIdempotent(t *testing.T) {
	q := newFakeQueue()
	s := NewScheduler(q, 10*time.Minute)
	for i := 0; i < 2; i++ {
		if err := s.Cancel(context.Background(), "missing"); err != nil {
			t.Errorf("Cancel() error = %v", err)
		}
	}
}

func TestSchedulerCancelFailureKeepsStaleJobHarmless(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	q := newFakeQueue()
	s := &Scheduler{queue: q, lead: 10 * time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()

	first := now.Add(time.Hour)
	if err := s.Schedule(ctx, "b1", "u1", "Standup", first); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	// The task is already running, so it cannot be removed.
	busy := errors.New("cannot delete task in active state")
	q.cancelErr = busy
	moved := now.Add(4 * time.Hour)
	if err := s.Schedule(ctx, "b1", "u1", "Standup", moved); !errors.Is(err, busy) {
		t.Fatalf("Schedule() error = %v, want %v", err, busy)
	}
	stale := q.jobs["b1"]
	if !stale.payload.StartTime.Equal(first) {
		t.Fatalf("job start = %v, want %v", stale.payload.StartTime, first)
	}

	// When the stale job runs against the moved booking it delivers nothing.
	b := &models.Booking{ID: "b1", UserID: "u1", Title: "Standup", StartTime: moved, EndTime: moved.Add(time.Hour), Status: models.StatusScheduled}
	store := &fakeStore{bookings: map[string]*models.Booking{"b1": b}}
	ch := &fakeChannel{}
	res := newTestExecutor(store, ch).Execute(ctx, stale.payload)

	if res.Data["skipped"] != true {
		t.Errorf("Data[skipped] = %v, want true", res.Data["skipped"])
	}
	if len(ch.pushes) != 0 {
		t.Errorf("pushes = %v, want none", len(ch.pushes))
	}
	if b.ReminderSent {
		t.Error("ReminderSent = true, want false")
	}
}
