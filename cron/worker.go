package cron

import (
	"context"
	"fmt"
	"time"

	"bookwise/config"
	"bookwise/services/tasks"
	"bookwise/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	maxStartAttempts    = 5
	redisCheckInterval  = 10 * time.Second
	shutdownGracePeriod = 10 * time.Second
)

// QueueRedisOpt is the asynq connection for the reminder queue database.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewReminderMux routes reminder tasks to handler.
func NewReminderMux(handler asynq.Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeBookingReminder, handler)
	return mux
}

// RunReminderWorker consumes the reminder queue until ctx is done. Startup is
// retried with a growing backoff.
func RunReminderWorker(ctx context.Context, handler asynq.Handler) error {
	logger := utils.GetLogger().With(zap.String("component", "reminder-worker"))

	srv := asynq.NewServer(QueueRedisOpt(), asynq.Config{
		Concurrency:     config.AppConfig.WorkerConcurrency,
		Queues:          map[string]int{config.AppConfig.ReminderQueue: 1},
		ShutdownTimeout: shutdownGracePeriod,
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			logger.Warn("Reminder task failed", zap.String("type", task.Type()), zap.Error(err))
		}),
	})
	mux := NewReminderMux(handler)

	go monitorRedisConnection(ctx, logger)

	var err error
	for attempt := 1; attempt <= maxStartAttempts; attempt++ {
		if err = srv.Start(mux); err == nil {
			break
		}
		logger.Error("Failed to start worker", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*2) * time.Second):
		}
	}
	if err != nil {
		return fmt.Errorf("reminder worker: giving up after %d attempts: %w", maxStartAttempts, err)
	}

	logger.Info("Reminder worker started", zap.String("queue", config.AppConfig.ReminderQueue))
	<-ctx.Done()
	srv.Shutdown()
	logger.Info("Reminder worker stopped")
	return nil
}

// monitorRedisConnection pings the queue database periodically to surface outages.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(redisCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
