package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"bookwise/config"
	"bookwise/cron"
	"bookwise/database"
	"bookwise/database/repository"
	"bookwise/handlers"
	"bookwise/routes"
	"bookwise/services/booking"
	"bookwise/services/events"
	"bookwise/services/notification"
	"bookwise/services/reminder"
	"bookwise/services/user"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	if err := utils.InitRedis(); err != nil {
		logger.Fatal("main: redis unavailable", zap.Error(err))
	}
	utils.StartHealthMonitor(ctx, 30*time.Second, utils.CacheClient, database.MongoClient)

	// repositories.
	bookingStore := repository.NewMongoBookingRepo()
	userStore := repository.NewMongoUserRepository()

	// queue.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	inspector := asynq.NewInspector(cron.QueueRedisOpt())
	defer inspector.Close()

	queue := reminder.NewAsynqQueue(queueClient, inspector, config.AppConfig.ReminderQueue, config.JobRetention())
	scheduler := reminder.NewScheduler(queue, config.ReminderLead())
	monitor := reminder.NewMonitor(inspector, utils.CacheClient, config.AppConfig.ReminderQueue)

	// push channels.
	rooms := notification.NewRoomChannel(utils.CacheClient)
	push := notification.MultiChannel{rooms}
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		fcm, err := utils.InitFirebaseMessaging(ctx, path)
		if err != nil {
			logger.Warn("main: FCM disabled", zap.Error(err))
		} else {
			push = append(push, notification.NewFCMChannel(fcm, userStore))
		}
	}

	// services.
	blacklist := utils.NewRedisTokenBlacklist(utils.AuthCacheClient)
	userService := user.NewDefaultUserService(userStore, blacklist, config.AccessTokenTTL(), config.RefreshTokenTTL())
	bookingService := booking.NewDefaultBookingService(
		bookingStore,
		scheduler,
		events.NewRedisPublisher(utils.CacheClient),
		push,
		config.BookingLead(),
	)
	executor := reminder.NewExecutor(bookingStore, push, config.ReminderLead())

	handlerBundle := &handlers.HandlerBundle{
		Users:               userStore,
		Blacklist:           blacklist,
		AuthHandler:         handlers.NewAuthHandler(userService),
		UserHandler:         handlers.NewUserHandler(userService),
		BookingHandler:      handlers.NewBookingHandler(bookingService),
		JobHandler:          handlers.NewJobHandler(monitor),
		NotificationHandler: handlers.NewNotificationHandler(rooms),
	}

	var wg sync.WaitGroup
	if config.RunsWorker() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := cron.RunReminderWorker(ctx, asynq.HandlerFunc(executor.ProcessTask)); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("main: reminder worker stopped", zap.Error(err))
				stop()
			}
		}()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Logger())
	if config.RunsAPI() {
		routes.RegisterRoutes(router, handlerBundle)
	} else {
		routes.RegisterWorkerRoutes(router, handlerBundle)
	}

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("mode", config.AppConfig.RunMode))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	wg.Wait()

	utils.CloseRedis()
	database.CloseDB(shutdownCtx)
	logger.Info("main: stopped gracefully")
}
