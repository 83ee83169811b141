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

	cancelBookingHandler "github.com/dgarza/barberbook/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/dgarza/barberbook/internal/api/handlers/create_booking"
	createPayoutHandler "github.com/dgarza/barberbook/internal/api/handlers/create_payout"
	getAvailableSlotsHandler "github.com/dgarza/barberbook/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/dgarza/barberbook/internal/api/handlers/get_booking"
	getPayoutsHandler "github.com/dgarza/barberbook/internal/api/handlers/get_payouts"
	getShopPolicyHandler "github.com/dgarza/barberbook/internal/api/handlers/get_shop_policy"
	previewPayoutHandler "github.com/dgarza/barberbook/internal/api/handlers/preview_payout"
	rescheduleBookingHandler "github.com/dgarza/barberbook/internal/api/handlers/reschedule_booking"
	updateShopPolicyHandler "github.com/dgarza/barberbook/internal/api/handlers/update_shop_policy"
	validateBookingHandler "github.com/dgarza/barberbook/internal/api/handlers/validate_booking"
	"github.com/dgarza/barberbook/internal/api/middleware"
	"github.com/dgarza/barberbook/internal/config"
	appointmentRepo "github.com/dgarza/barberbook/internal/infra/storage/appointment"
	payoutRepo "github.com/dgarza/barberbook/internal/infra/storage/payout"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	saleRepo "github.com/dgarza/barberbook/internal/infra/storage/sale"
	scheduleRepo "github.com/dgarza/barberbook/internal/infra/storage/schedule"
	serviceRepo "github.com/dgarza/barberbook/internal/infra/storage/service"
	appointmentsService "github.com/dgarza/barberbook/internal/service/appointments"
	payoutsService "github.com/dgarza/barberbook/internal/service/payouts"
	settingsService "github.com/dgarza/barberbook/internal/service/settings"
	createBookingUC "github.com/dgarza/barberbook/internal/usecase/create_booking"
	createPayoutUC "github.com/dgarza/barberbook/internal/usecase/create_payout"
	getAvailableSlotsUC "github.com/dgarza/barberbook/internal/usecase/get_available_slots"
	previewPayoutUC "github.com/dgarza/barberbook/internal/usecase/preview_payout"
	validateBookingUC "github.com/dgarza/barberbook/internal/usecase/validate_booking"
	"github.com/dgarza/barberbook/pkg/dbmetrics"
	"github.com/dgarza/barberbook/pkg/logger"
	"github.com/dgarza/barberbook/pkg/metrics"
	"github.com/dgarza/barberbook/pkg/txmanager"
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

	log.Info("Starting barberbook...")
	log.Info("Configuration loaded from config.toml")

	// The shop timezone anchors every calendar calculation: slot
	// generation, advance windows, interval alignment.
	location, err := cfg.Shop.Location()
	if err != nil {
		log.Fatal("Failed to load shop timezone %q: %v", cfg.Shop.Timezone, err)
	}
	log.Info("Shop timezone: %s", cfg.Shop.Timezone)

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// dbmetrics tolerates a nil collector, so the wrapped handle is the
	// single executor type everywhere.
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithPoolStats(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	saleRepository := saleRepo.NewRepository(wrappedDB)
	payoutRepository := payoutRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		policyRepository,
		scheduleRepository,
		txMgr,
		location,
		realClock{},
		log,
	)
	settingsSvc := settingsService.NewService(policyRepository, log)
	payoutSvc := payoutsService.NewService(payoutRepository, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		policyRepository,
		scheduleRepository,
		appointmentRepository,
		serviceRepository,
		location,
		log,
	)
	validateBookingUseCase := validateBookingUC.NewUseCase(policyRepository, location, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		policyRepository,
		scheduleRepository,
		serviceRepository,
		txMgr,
		location,
		log,
	)
	previewPayoutUseCase := previewPayoutUC.NewUseCase(
		appointmentRepository,
		saleRepository,
		policyRepository,
		log,
	)
	createPayoutUseCase := createPayoutUC.NewUseCase(
		appointmentRepository,
		saleRepository,
		payoutRepository,
		policyRepository,
		txMgr,
		log,
	)

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getShopPolicy := getShopPolicyHandler.NewHandler(settingsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(appointmentSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(appointmentSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(appointmentSvc, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	updateShopPolicy := updateShopPolicyHandler.NewHandler(settingsSvc, log)
	previewPayout := previewPayoutHandler.NewHandler(previewPayoutUseCase, log)
	createPayout := createPayoutHandler.NewHandler(createPayoutUseCase, log)
	getPayouts := getPayoutsHandler.NewHandler(payoutSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes, rate-limited.
	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	public.HandleFunc("/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/shop/policy", getShopPolicy.Handle).Methods(http.MethodGet)

	// Protected routes, require X-User-ID header.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/shop/policy", updateShopPolicy.Handle).Methods(http.MethodPut)

	protected.HandleFunc("/barbers/{barberId}/payouts/preview", previewPayout.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId}/payouts", createPayout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/barbers/{barberId}/payouts", getPayouts.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

// realClock is the wall-clock time provider wired into the services
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
