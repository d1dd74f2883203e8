package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teesheet/internal/admin"
	"teesheet/internal/auth"
	"teesheet/internal/booking"
	"teesheet/internal/config"
	"teesheet/internal/course"
	"teesheet/internal/db"
	"teesheet/internal/email"
	"teesheet/internal/logger"
	"teesheet/internal/server"
	"teesheet/internal/teesheet"
	"teesheet/internal/user"
)

// @title Tee Sheet API
// @version 1.0
// @description Golf tee-time booking: tee sheets, bookings and club administration.
// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting tee sheet service")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	tokens, err := auth.NewSigner(cfg.JWTSecret, cfg.JWTRefreshSecret)
	if err != nil {
		logger.Fatalf("Failed to set up token signing: %v", err)
	}

	catalog, err := course.Load(cfg.CoursesFile)
	if err != nil {
		logger.Fatalf("Failed to load courses: %v", err)
	}
	logger.Info("Courses loaded", "default", catalog.Default().CourseName, "count", len(catalog.List()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	database, err := db.Connect(connectCtx, cfg.DatabaseURL)
	connectCancel()
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	emailService := email.New(email.Config{
		From:      cfg.EmailFrom,
		FromName:  cfg.EmailFromName,
		SMTPHost:  cfg.SMTPHost,
		SMTPPort:  cfg.SMTPPort,
		SMTPUser:  cfg.SMTPUser,
		SMTPPass:  cfg.SMTPPass,
		RedisAddr: cfg.RedisAddr,
	})
	defer emailService.Close()
	if err := emailService.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, emails will fail until it is up", "error", err)
	}
	go emailService.Start(ctx)

	userService := user.NewService(user.NewRepository(database), tokens)
	bookingService := booking.NewService(
		booking.NewRepository(database),
		catalog,
		teesheet.NewCalculator(teesheet.ConstantPricing),
		emailService,
	)

	srv := server.New(cfg, server.Services{
		Tokens:   tokens,
		Users:    userService,
		Bookings: bookingService,
		Admin:    admin.NewService(userService, bookingService),
		Contact:  emailService,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
