package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bookwise/models"
	"bookwise/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

type fakeInspector struct {
	info      *asynq.QueueInfo
	infoErr   error
	completed []*asynq.TaskInfo
	archived  []*asynq.TaskInfo
	deleted   []string
}

func (f *fakeInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeInspector) ListCompletedTasks(string, ...asynq.ListOption) ([]*asynq.TaskInfo, error) {
	return f.completed, nil
}

func (f *fakeInspector) ListArchivedTasks(string, ...asynq.ListOption) ([]*asynq.TaskInfo, error) {
	return f.archived, nil
}

func (f *fakeInspector) DeleteTask(_, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", p.err)
}

var monitorNow = time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)

func newTestMonitor(in *fakeInspector, p pinger) *Monitor {
	return &Monitor{inspector: in, redis: p, queue: "booking-jobs", now: func() time.Time { return monitorNow }}
}

func TestMonitorStats(t *testing.T) {
	in := &fakeInspector{info: &asynq.QueueInfo{Pending: 1, Active: 2, Scheduled: 3, Completed: 4, Archived: 5}}
	stats, err := newTestMonitor(in, fakePinger{}).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := models.QueueStats{Waiting: 1, Active: 2, Delayed: 3, Completed: 4, Failed: 5, Total: 15}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}

	in = &fakeInspector{infoErr: asynq.ErrQueueNotFound}
	stats, err = newTestMonitor(in, fakePinger{}).Stats(context.Background())
	if err != nil || stats != (models.QueueStats{}) {
		t.Errorf("Stats() on missing queue = %+v, %v; want zero, nil", stats, err)
	}
}

func TestMonitorMetrics(t *testing.T) {
	payload, _ := json.Marshal(models.ReminderPayload{BookingID: "b9", UserID: "u9"})
	in := &fakeInspector{
		info: &asynq.QueueInfo{Archived: 1},
		archived: []*asynq.TaskInfo{{
			ID: tasks.ReminderTaskID("b9"), Type: tasks.TypeBookingReminder, Payload: payload,
			LastErr: "offline", LastFailedAt: monitorNow.Add(-time.Minute),
		}},
	}
	m, err := newTestMonitor(in, fakePinger{}).Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics() error = %v", err)
	}
	if len(m.RecentFailures) != 1 {
		t.Fatalf("RecentFailures = %v, want 1 entry", len(m.RecentFailures))
	}
	f := m.RecentFailures[0]
	if f.FailedReason != "offline" || f.Data.BookingID != "b9" {
		t.Errorf("failure = %+v", f)
	}
}

func TestMonitorCleanup(t *testing.T) {
	old := monitorNow.Add(-48 * time.Hour)
	fresh := monitorNow.Add(-time.Hour)
	in := &fakeInspector{
		completed: []*asynq.TaskInfo{{ID: "c-old", CompletedAt: old}, {ID: "c-new", CompletedAt: fresh}},
		archived:  []*asynq.TaskInfo{{ID: "a-old", LastFailedAt: old}, {ID: "a-new", LastFailedAt: fresh}},
	}
	res, err := newTestMonitor(in, fakePinger{}).Cleanup(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if res.Removed != 2 {
		t.Errorf("Removed = %v, want %v", res.Removed, 2)
	}
	if len(in.deleted) != 2 || in.deleted[0] != "c-old" || in.deleted[1] != "a-old" {
		t.Errorf("deleted = %v, want [c-old a-old]", in.deleted)
	}
}

func TestMonitorHealth(t *testing.T) {
	in := &fakeInspector{info: &asynq.QueueInfo{}}
	status, err := newTestMonitor(in, fakePinger{}).Health(context.Background())
	if err != nil || status["status"] != "healthy" {
		t.Errorf("Health() = %v, %v; want healthy", status, err)
	}

	status, err = newTestMonitor(in, fakePinger{err: errors.New("refused")}).Health(context.Background())
	if err == nil || status["redis"] != "disconnected" {
		t.Errorf("Health() = %v, %v; want disconnected error", status, err)
	}
}
