package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rpl-maker-lab/service-booking/internal/application"
	"github.com/rpl-maker-lab/service-booking/internal/auth"
	"github.com/rpl-maker-lab/service-booking/internal/config"
	"github.com/rpl-maker-lab/service-booking/internal/database"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
	"github.com/rpl-maker-lab/service-booking/internal/handler"
	"github.com/rpl-maker-lab/service-booking/internal/logger"
	"github.com/rpl-maker-lab/service-booking/internal/middleware"
	"github.com/rpl-maker-lab/service-booking/internal/notification"
	"github.com/rpl-maker-lab/service-booking/internal/repository"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "maker-lab-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting maker-lab-booking",
		zap.String("port", cfg.Port),
	)

	db, err := database.Connect(cfg.DB.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.RequestModel{}, &repository.BookingModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	catalog, err := booking.NewCatalog(cfg.Intake.TimeSlots, cfg.Intake.Equipment)
	if err != nil {
		log.Fatal("invalid time slot catalog", zap.Error(err))
	}

	policy, err := booking.NewPolicy(
		cfg.Intake.OpenWeekdays,
		cfg.Intake.MinDates,
		cfg.Intake.MaxDates,
		cfg.Intake.MinTimeSlots,
		cfg.Intake.MaxTimeSlots,
		cfg.Intake.MinEquipment,
		cfg.Intake.EquipmentOptionalForTraining,
	)
	if err != nil {
		log.Fatal("invalid intake policy", zap.Error(err))
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	requestRepo := repository.NewGormRequestRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	mailer := notification.NewResendMailer(
		cfg.Mail.ResendAPIKey,
		cfg.Mail.FromAddress,
		cfg.Mail.ReplyTo,
		log,
	)

	intakeService := application.NewIntakeService(
		requestRepo,
		catalog,
		policy,
		mailer,
		cfg.Mail.LabInbox,
		log,
	)
	lifecycleService := application.NewLifecycleService(
		requestRepo,
		bookingRepo,
		mailer,
		cfg.Mail.LabInbox,
		log,
	)
	exportService := application.NewExportService(bookingRepo, log)

	bookingHandler := handler.NewBookingHandler(intakeService)
	adminHandler := handler.NewAdminHandler(lifecycleService, exportService, jwtManager, cfg.Admin)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeaders())

	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bookingHandler.RegisterRoutes(&router.RouterGroup)
	adminHandler.RegisterRoutes(&router.RouterGroup)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down maker-lab-booking...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("maker-lab-booking stopped")
}
