package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/garizetu/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/garizetu/booking-service/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/garizetu/booking-service/internal/api/handlers/get_admin_bookings"
	getBookingHandler "github.com/garizetu/booking-service/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/garizetu/booking-service/internal/api/handlers/get_booking_stats"
	getFleetAvailabilityHandler "github.com/garizetu/booking-service/internal/api/handlers/get_fleet_availability"
	getNotificationsHandler "github.com/garizetu/booking-service/internal/api/handlers/get_notifications"
	getUserBookingsHandler "github.com/garizetu/booking-service/internal/api/handlers/get_user_bookings"
	markNotificationReadHandler "github.com/garizetu/booking-service/internal/api/handlers/mark_notification_read"
	simulatePaymentHandler "github.com/garizetu/booking-service/internal/api/handlers/simulate_payment"
	updateBookingHandler "github.com/garizetu/booking-service/internal/api/handlers/update_booking"
	"github.com/garizetu/booking-service/internal/api/middleware"
	"github.com/garizetu/booking-service/internal/config"
	bookingRepo "github.com/garizetu/booking-service/internal/infra/storage/booking"
	carRepo "github.com/garizetu/booking-service/internal/infra/storage/car"
	userRepo "github.com/garizetu/booking-service/internal/infra/storage/user"
	"github.com/garizetu/booking-service/internal/scheduler"
	bookingsService "github.com/garizetu/booking-service/internal/service/bookings"
	notificationsService "github.com/garizetu/booking-service/internal/service/notifications"
	statsService "github.com/garizetu/booking-service/internal/service/stats"
	createBookingUC "github.com/garizetu/booking-service/internal/usecase/create_booking"
	getFleetAvailabilityUC "github.com/garizetu/booking-service/internal/usecase/get_fleet_availability"
	"github.com/garizetu/booking-service/pkg/dbmetrics"
	"github.com/garizetu/booking-service/pkg/logger"
	"github.com/garizetu/booking-service/pkg/metrics"
	"github.com/garizetu/booking-service/pkg/simpletxmanager"
	"github.com/garizetu/booking-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GariZetu Booking Service...")
	log.Info("Configuration loaded from config.toml")

	// Metrics collector (optional)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database connection
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database connection: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database %s:%d/%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Repositories and transaction manager (with metrics or without)
	var (
		bookingRepository *bookingRepo.Repository
		carRepository     *carRepo.Repository
		userRepository    *userRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		carRepository = carRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		carRepository = carRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Legacy rows may carry NULL notification flags; coerce them once at startup.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if fixed, err := bookingRepository.BackfillNullNotificationRead(startupCtx); err != nil {
		log.Error("Notification flag backfill failed: %v", err)
	} else if fixed > 0 {
		log.Info("Backfilled admin_notification_read on %d legacy bookings", fixed)
	}
	cancelStartup()

	// Services
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		carRepository,
		txMgr,
		log,
	)
	notificationSvc := notificationsService.NewService(
		bookingRepository,
		txMgr,
		log,
	)
	statsSvc := statsService.NewService(
		bookingRepository,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		carRepository,
		userRepository,
		bookingSvc,
		txMgr,
		log,
		cfg.Booking.PaymentWindowMinutes,
	)
	getFleetAvailabilityUseCase := getFleetAvailabilityUC.NewUseCase(
		carRepository,
		bookingRepository,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getFleetAvailability := getFleetAvailabilityHandler.NewHandler(getFleetAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	simulatePayment := simulatePaymentHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(statsSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (no authentication)
	// ============================================================

	// Fleet availability snapshot
	api.HandleFunc("/cars/availability", getFleetAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Bookings ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", simulatePayment.Handle).Methods(http.MethodPost)

	// Booking history for a user
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Administration ---
	protected.HandleFunc("/admin/bookings", getAdminBookings.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/admin/cars/{carId}/bookings", getAdminBookings.HandleCarBookings).Methods(http.MethodGet)
	protected.HandleFunc("/admin/stats", getBookingStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/notifications", getNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/notifications/{bookingId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

	// Background sweep for expired payment windows
	sweepInterval := time.Duration(cfg.Booking.ExpirySweepMs) * time.Millisecond
	expiryScheduler, err := scheduler.New(bookingSvc, sweepInterval, log)
	if err != nil {
		log.Fatal("Failed to create expiry scheduler: %v", err)
	}
	expiryScheduler.Start()
	log.Info("Expiry sweep scheduled every %s", sweepInterval)

	// HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	expiryScheduler.Stop()
	log.Info("Expiry scheduler stopped")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
