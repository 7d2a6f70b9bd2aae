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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/cancel_booking"
	createAbsenceHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/create_absence"
	createBookingHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/create_booking"
	deleteAbsenceHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/delete_absence"
	getAbsencesHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_absences"
	getAvailabilityHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_calendar"
	getEligibilityHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_eligibility"
	getProfileHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_profile"
	getProviderBookingsHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_provider_bookings"
	getServicesHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_services"
	getSettingsHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/get_user_bookings"
	replaceEligibilityHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/replace_eligibility"
	toggleWindowHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/toggle_window"
	updateBookingStatusHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/update_settings"
	updateWindowHandler "github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers/update_window"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/config"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/infra/ratelimit"
	absenceRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/absence"
	windowRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/booking"
	eligibilityRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/eligibility"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	serviceRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-ArtisanBookingService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule"
	settingsService "github.com/m04kA/SMC-ArtisanBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/get_available_slots"
	getCalendarUC "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-ArtisanBookingService/migrations"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/logger"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/txmanager"
)

// eventPublisher публикатор событий записи с освобождением соединения при остановке
type eventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ArtisanBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil *Metrics безопасен: все методы ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	providerRepository := providerRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	windowRepository := windowRepo.NewRepository(wrappedDB)
	eligibilityRepository := eligibilityRepo.NewRepository(wrappedDB)
	absenceRepository := absenceRepo.NewRepository(wrappedDB)

	var serviceRepository serviceRepo.Reader = serviceRepo.NewRepository(wrappedDB)
	if cfg.Cache.Enabled {
		serviceRepository = serviceRepo.NewCachedRepository(
			serviceRepository,
			cfg.Cache.Size,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
		log.Info("Service catalog cache enabled (size=%d, ttl=%ds)", cfg.Cache.Size, cfg.Cache.TTLSeconds)
	}

	// Публикация событий записи
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		rabbit, err := events.NewRabbitPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbit
		log.Info("Booking events enabled (exchange=%s)", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Ограничение частоты запросов
	var limiter middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		memory := ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, window)

		if cfg.RateLimit.RedisAddr != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.RateLimit.RedisAddr,
				Password: cfg.RateLimit.RedisPassword,
				DB:       cfg.RateLimit.RedisDB,
			})
			defer redisClient.Close()

			limiter = ratelimit.NewFallbackLimiter(
				ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, window),
				memory,
				log,
			)
			log.Info("Rate limiting enabled with Redis at %s (%d req / %ds)",
				cfg.RateLimit.RedisAddr, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		} else {
			limiter = memory
			log.Info("Rate limiting enabled in memory (%d req / %ds)",
				cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		}
	}

	policy := cfg.Booking.Policy()
	location := cfg.Booking.Location()
	log.Info("Booking policy=%s, time zone=%s", policy, location)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		providerRepository,
		windowRepository,
		eligibilityRepository,
		absenceRepository,
		serviceRepository,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		providerRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		providerRepository,
		publisher,
		location,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		providerRepository,
		serviceRepository,
		settingsRepository,
		scheduleSvc,
		txMgr,
		publisher,
		policy,
		location,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		providerRepository,
		serviceRepository,
		settingsRepository,
		scheduleSvc,
		bookingRepository,
		policy,
		location,
		metricsCollector,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		providerRepository,
		serviceRepository,
		settingsRepository,
		scheduleSvc,
		bookingRepository,
		policy,
		location,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(scheduleSvc, log)
	toggleWindow := toggleWindowHandler.NewHandler(scheduleSvc, log)
	updateWindow := updateWindowHandler.NewHandler(scheduleSvc, log)
	getEligibility := getEligibilityHandler.NewHandler(scheduleSvc, log)
	replaceEligibility := replaceEligibilityHandler.NewHandler(scheduleSvc, log)
	getAbsences := getAbsencesHandler.NewHandler(scheduleSvc, log)
	createAbsence := createAbsenceHandler.NewHandler(scheduleSvc, log)
	deleteAbsence := deleteAbsenceHandler.NewHandler(scheduleSvc, log)
	getServices := getServicesHandler.NewHandler(scheduleSvc, log)
	getProfile := getProfileHandler.NewHandler(providerRepository, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (токен необязателен, действует лимит запросов)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(auth.OptionalAuth)
	if limiter != nil {
		public.Use(middleware.RateLimit(limiter, metricsCollector, log))
	}

	// --- Расписание мастера ---
	public.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/eligibility", getEligibility.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/absences", getAbsences.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/services", getServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/settings", getSettings.Handle).Methods(http.MethodGet)

	// --- Доступность ---
	public.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Список записей мастера: владелец видит данные клиентов
	public.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

	// Создание бронирования, в том числе анонимное
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	// --- Клиент ---
	protected.HandleFunc("/users/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Управление мастером (для владельца) ---
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/providers/{providerId}/settings", updateSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/availability/{dayOfWeek}/toggle", toggleWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/availability/{dayOfWeek}", updateWindow.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/eligibility", replaceEligibility.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/absences", createAbsence.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/absences/{absenceId}", deleteAbsence.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
