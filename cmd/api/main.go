package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/edutrack/activity-api/internal/config"
	"github.com/edutrack/activity-api/internal/database"
	"github.com/edutrack/activity-api/internal/handler"
	"github.com/edutrack/activity-api/internal/middleware"
	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/repository"
	"github.com/edutrack/activity-api/internal/router"
	"github.com/edutrack/activity-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Student{}, &models.Badge{}, &models.Activity{}, &models.Notification{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// NATS is optional; a single instance still delivers notifications locally.
	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		conn, err := database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer conn.Drain()
		natsConn = conn
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)
	uow := repository.NewUnitOfWork(db)

	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.NotificationChannel, natsConn, cfg.NotificationRetention, validate, logger)
	activityService := service.NewActivityService(activityRepo, studentRepo, userRepo, notificationService, validate, logger)
	reviewService := service.NewReviewService(uow, userRepo, notificationService, validate, logger)
	statisticsService := service.NewStatisticsService(statisticsRepo, redisClient, cfg.StatisticsCacheTTL, logger)
	studentService := service.NewStudentService(studentRepo, logger)

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationService.Start(appCtx)

	activityHandler := handler.NewActivityHandler(activityService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, activityService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger, cfg.StreamKeepAlive)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, logger)
	studentHandler := handler.NewStudentHandler(studentService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler:     activityHandler,
		StudentHandler:      studentHandler,
		ReviewHandler:       reviewHandler,
		NotificationHandler: notificationHandler,
		StatisticsHandler:   statisticsHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		SubmitRateLimit:     middleware.RateLimit("activity-submit", 10, time.Minute),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
