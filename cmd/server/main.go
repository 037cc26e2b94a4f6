package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/alatem/alatem/internal/config"
	v1 "github.com/alatem/alatem/internal/handler/http/v1"
	"github.com/alatem/alatem/internal/repository"
	"github.com/alatem/alatem/internal/service"
	"github.com/alatem/alatem/internal/sms"
	"github.com/alatem/alatem/pkg/logger"
	mongoclient "github.com/alatem/alatem/pkg/mongo"
	"github.com/alatem/alatem/pkg/postgres"
	redisclient "github.com/alatem/alatem/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/alatem/alatem/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Alatem API
// @version 1.0
// @description Community health and safety SMS alert system for Haiti.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Подключение к MongoDB
	mongoDB, err := mongoclient.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(context.Background())
	log.Info("Successfully connected to MongoDB")

	if err := repository.EnsureUserIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create MongoDB indexes: %v", err)
	}

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя SMS-заданий
	smsPublisher := sms.NewRedisPublisher(redisClient)

	// Инициализация и запуск воркера отправки SMS
	smsWorker := sms.NewWorker(redisClient, log, cfg)
	smsWorker.Start(ctx)

	// Инициализация репозиториев
	userRepo := repository.NewUserRepository(mongoDB)
	alertRepo := repository.NewAlertRepository(mongoDB)
	reportRepo := repository.NewReportRepository(dbpool)
	otpStore := repository.NewOTPStore(redisClient, cfg.OTPTTL, cfg.OTPMaxAttempts)

	// Инициализация сервисов
	registrationService := service.NewRegistrationService(userRepo, otpStore, smsPublisher, log, cfg)
	alertService := service.NewAlertService(alertRepo, userRepo, smsPublisher, log, cfg)
	reportService := service.NewReportService(reportRepo, alertService, log, cfg)
	statsService := service.NewStatsService(userRepo, alertRepo, reportRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(registrationService, alertService, reportService, statsService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
