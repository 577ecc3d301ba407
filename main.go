package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"

	"courtbot/config"
	"courtbot/cron"
	"courtbot/database"
	reservationRepo "courtbot/database/repository/reservation"
	"courtbot/handlers"
	"courtbot/middleware"
	"courtbot/routes"
	"courtbot/services/booking"
	"courtbot/services/notification"
	"courtbot/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	schedule, err := booking.NewScheduleFromConfig()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid schedule configuration: %v", err)
	}
	clock := booking.NewClock(schedule.Location)
	grace := time.Duration(config.AppConfig.SweepGraceMinutes) * time.Minute

	// Reservation store backend.
	var (
		store       reservationRepo.ReservationStore
		redisClient *redis.Client
		mongoClient *mongo.Client
	)
	switch config.AppConfig.StoreBackend {
	case "file":
		fileStore, err := reservationRepo.NewFileReservationStore(config.AppConfig.DBFile, schedule.Location, grace)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open bookings file: %v", err)
		}
		store = fileStore
	case "redis":
		utils.InitBookingCache()
		redisClient = utils.GetBookingCacheClient()
		store = reservationRepo.NewRedisReservationStore(redisClient, schedule.Location, grace)
	case "mongo":
		database.InitDB()
		mongoClient = database.MongoClient
		mongoStore := reservationRepo.NewMongoReservationStore(mongoClient, "courtbot", schedule.Location, grace)
		if err := mongoStore.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
		}
		store = mongoStore
	default:
		logger.Sugar().Fatalf("main: unknown STORE_BACKEND %q", config.AppConfig.StoreBackend)
	}

	// Clear out anything that elapsed while the process was down, then keep
	// sweeping in the background.
	booking.StartupSweep(context.Background(), store, clock)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go cron.StartSweepCron(sweepCtx, store, clock,
		time.Duration(config.AppConfig.SweepEveryMinutes)*time.Minute)

	// Outbound side: Bot API client plus the announce queue when Redis is
	// around to back it.
	api := notification.NewTelegramClient(config.AppConfig.BotToken)
	var queue *asynq.Client
	if config.AppConfig.StoreBackend == "redis" {
		queue = cron.NewAnnounceQueueClient()
		defer queue.Close()
		cron.InitAnnounceWorker(api, config.AppConfig.GroupChatID)
	}
	notifier := &notification.DefaultNotifier{
		API:         api,
		GroupChatID: config.AppConfig.GroupChatID,
		Queue:       queue,
	}

	flowService := &booking.DefaultFlowService{
		Store:    store,
		Sessions: booking.NewSessionRepository(),
		Clock:    clock,
		Schedule: schedule,
		Notifier: notifier,
	}

	if schedule.EnableSiesta {
		logger.Info("siesta reservations enabled")
	}

	webhookHandler := handlers.NewWebhookHandler(
		flowService, notifier, config.AppConfig.BotToken, schedule.EnableSiesta, logger)

	utils.StartHealthMonitor(redisClient, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, webhookHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
