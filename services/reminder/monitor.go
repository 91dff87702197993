package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookwise/models"
	"bookwise/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	recentFailureCount = 10
	cleanupPageSize    = 100
)

type queueInspector interface {
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	ListCompletedTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
	ListArchivedTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
	DeleteTask(queue, id string) error
}

type pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Monitor reports on and prunes the reminder queue.
type Monitor struct {
	inspector queueInspector
	redis     pinger
	queue     string
	now       func() time.Time
}

func NewMonitor(inspector *asynq.Inspector, redisClient *redis.Client, queue string) *Monitor {
	return &Monitor{inspector: inspector, redis: redisClient, queue: queue, now: time.Now}
}

// Stats counts tasks per state. A queue that has never seen a task reports zeros.
func (m *Monitor) Stats(_ context.Context) (models.QueueStats, error) {
	info, err := m.inspector.GetQueueInfo(m.queue)
	if errors.Is(err, asynq.ErrQueueNotFound) {
		return models.QueueStats{}, nil
	}
	if err != nil {
		return models.QueueStats{}, fmt.Errorf("queue info: %w", err)
	}
	stats := models.QueueStats{
		Waiting:   info.Pending + info.Retry,
		Active:    info.Active,
		Delayed:   info.Scheduled,
		Completed: info.Completed,
		Failed:    info.Archived,
	}
	stats.Total = stats.Waiting + stats.Active + stats.Delayed + stats.Completed + stats.Failed
	return stats, nil
}

// Metrics returns the stats plus the most recent failures.
func (m *Monitor) Metrics(ctx context.Context) (models.JobMetrics, error) {
	stats, err := m.Stats(ctx)
	if err != nil {
		return models.JobMetrics{}, err
	}

	failures := []models.FailedJob{}
	archived, err := m.inspector.ListArchivedTasks(m.queue, asynq.PageSize(recentFailureCount))
	if err != nil && !errors.Is(err, asynq.ErrQueueNotFound) {
		return models.JobMetrics{}, fmt.Errorf("list failed jobs: %w", err)
	}
	for _, ti := range archived {
		job := models.FailedJob{
			ID:           ti.ID,
			Type:         ti.Type,
			FailedReason: ti.LastErr,
			FailedAt:     ti.LastFailedAt,
		}
		if ti.Type == tasks.TypeBookingReminder {
			job.Data, _ = tasks.ParseReminderPayload(asynq.NewTask(ti.Type, ti.Payload))
		}
		failures = append(failures, job)
	}

	return models.JobMetrics{Stats: stats, RecentFailures: failures, Timestamp: m.now().UTC()}, nil
}

// Cleanup deletes completed and failed tasks that finished more than olderThan ago.
func (m *Monitor) Cleanup(_ context.Context, olderThan time.Duration) (models.CleanupResult, error) {
	cutoff := m.now().Add(-olderThan)

	completed, err := m.collect(m.inspector.ListCompletedTasks, func(ti *asynq.TaskInfo) bool {
		return ti.CompletedAt.Before(cutoff)
	})
	if err != nil {
		return models.CleanupResult{}, fmt.Errorf("list completed jobs: %w", err)
	}
	archived, err := m.collect(m.inspector.ListArchivedTasks, func(ti *asynq.TaskInfo) bool {
		return ti.LastFailedAt.Before(cutoff)
	})
	if err != nil {
		return models.CleanupResult{}, fmt.Errorf("list failed jobs: %w", err)
	}

	removed := 0
	for _, id := range append(completed, archived...) {
		err := m.inspector.DeleteTask(m.queue, id)
		if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
			return models.CleanupResult{}, fmt.Errorf("delete job %s: %w", id, err)
		}
		if err == nil {
			removed++
		}
	}

	return models.CleanupResult{
		Success:   true,
		Message:   fmt.Sprintf("Cleaned up %d completed and %d failed jobs", len(completed), len(archived)),
		Removed:   removed,
		Timestamp: m.now().UTC(),
	}, nil
}

type listFunc func(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)

// collect walks every page before anything is deleted so paging stays stable.
func (m *Monitor) collect(list listFunc, match func(*asynq.TaskInfo) bool) ([]string, error) {
	var ids []string
	for page := 1; ; page++ {
		batch, err := list(m.queue, asynq.Page(page), asynq.PageSize(cleanupPageSize))
		if errors.Is(err, asynq.ErrQueueNotFound) {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}
		for _, ti := range batch {
			if match(ti) {
				ids = append(ids, ti.ID)
			}
		}
		if len(batch) < cleanupPageSize {
			return ids, nil
		}
	}
}

// Health pings Redis and reads the queue.
func (m *Monitor) Health(ctx context.Context) (map[string]any, error) {
	status := map[string]any{
		"queue":     m.queue,
		"timestamp": m.now().UTC(),
	}
	if err := m.redis.Ping(ctx).Err(); err != nil {
		status["status"] = "unhealthy"
		status["redis"] = "disconnected"
		return status, fmt.Errorf("redis ping: %w", err)
	}
	status["redis"] = "connected"

	stats, err := m.Stats(ctx)
	if err != nil {
		status["status"] = "unhealthy"
		return status, err
	}
	status["status"] = "healthy"
	status["stats"] = stats
	return status, nil
}
