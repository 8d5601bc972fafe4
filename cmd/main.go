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

	changeListingHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/change_listing"
	checkAvailabilityHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/check_availability"
	closeSessionHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/close_session"
	getQuoteHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/get_quote"
	getSessionHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/get_session"
	openSessionHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/open_session"
	resumeDraftHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/resume_draft"
	startBookingHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/start_booking"
	submitEventHandler "github.com/m04kA/SMC-GearBookingService/internal/api/handlers/submit_event"
	"github.com/m04kA/SMC-GearBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GearBookingService/internal/config"
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-GearBookingService/internal/infra/storage/availability"
	draftRepo "github.com/m04kA/SMC-GearBookingService/internal/infra/storage/draft"
	sessionRepo "github.com/m04kA/SMC-GearBookingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-GearBookingService/internal/integrations/intents"
	listingServiceClient "github.com/m04kA/SMC-GearBookingService/internal/integrations/listingservice"
	draftsService "github.com/m04kA/SMC-GearBookingService/internal/service/drafts"
	sessionsService "github.com/m04kA/SMC-GearBookingService/internal/service/sessions"
	checkAvailabilityUC "github.com/m04kA/SMC-GearBookingService/internal/usecase/check_availability"
	getQuoteUC "github.com/m04kA/SMC-GearBookingService/internal/usecase/get_quote"
	resumeDraftUC "github.com/m04kA/SMC-GearBookingService/internal/usecase/resume_draft"
	startBookingUC "github.com/m04kA/SMC-GearBookingService/internal/usecase/start_booking"
	"github.com/m04kA/SMC-GearBookingService/internal/worker"
	"github.com/m04kA/SMC-GearBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GearBookingService/pkg/logger"
	"github.com/m04kA/SMC-GearBookingService/pkg/metrics"
)

// intentPublisher издатель намерений с закрытием соединения
type intentPublisher interface {
	Publish(ctx context.Context, intent domain.Intent) error
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

	log.Info("Starting SMC-GearBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (снимки доступности)
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var availabilityRepository *availabilityRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
	}

	// Хранилище черновиков
	var (
		draftRepository draftsService.DraftRepository
		draftPurger     worker.DraftPurger
		redisClient     *redis.Client
	)
	switch cfg.Drafts.Store {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		draftRepository = draftRepo.NewRedisRepository(redisClient, cfg.Drafts.KeyPrefix)
		log.Info("Draft store: redis (addr=%s)", cfg.Redis.Addr)
	default:
		memory := draftRepo.NewMemoryRepository()
		draftRepository = memory
		draftPurger = memory
		log.Info("Draft store: in-memory")
	}

	// Издатель намерений
	var publisher intentPublisher
	switch cfg.Intents.Publisher {
	case "kafka":
		publisher = intents.NewKafkaPublisher(cfg.Intents.Kafka.Brokers, cfg.Intents.Kafka.Topic, log)
		log.Info("Intent publisher: kafka (brokers=%v, topic=%s)", cfg.Intents.Kafka.Brokers, cfg.Intents.Kafka.Topic)
	case "rabbitmq":
		rabbit, err := intents.NewRabbitMQPublisher(cfg.Intents.RabbitMQ.URL, cfg.Intents.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = rabbit
		log.Info("Intent publisher: rabbitmq (exchange=%s)", cfg.Intents.RabbitMQ.Exchange)
	default:
		publisher = intents.NewLogPublisher(log)
		log.Info("Intent publisher: log")
	}

	// Инициализируем интеграционных клиентов
	listingClient := listingServiceClient.NewClient(
		cfg.ListingService.URL,
		time.Duration(cfg.ListingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ListingService=%s timeout=%ds)",
		cfg.ListingService.URL, cfg.ListingService.Timeout)

	// Инициализируем сервисы
	sessionsSvc := sessionsService.NewService(
		sessionRepo.NewRepository(),
		listingClient,
		availabilityRepository,
		publisher,
		metricsCollector,
		log,
		cfg.Sessions.LoadTimeoutDuration(),
	)
	draftsSvc := draftsService.NewService(
		draftRepository,
		cfg.Drafts.TTLDuration(),
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	startBookingUseCase := startBookingUC.NewUseCase(sessionsSvc, draftsSvc, cfg.Auth.LoginURL, log)
	resumeDraftUseCase := resumeDraftUC.NewUseCase(sessionsSvc, draftsSvc, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(listingClient, availabilityRepository, log)
	getQuoteUseCase := getQuoteUC.NewUseCase(listingClient, log)

	// Инициализируем handlers
	openSession := openSessionHandler.NewHandler(sessionsSvc, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	closeSession := closeSessionHandler.NewHandler(sessionsSvc, log)
	changeListing := changeListingHandler.NewHandler(sessionsSvc, log)
	submitEvent := submitEventHandler.NewHandler(sessionsSvc, log)
	startBooking := startBookingHandler.NewHandler(startBookingUseCase, log)
	resumeDraft := resumeDraftHandler.NewHandler(resumeDraftUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)

	gestureGuard := middleware.NewGestureGuard(cfg.Sessions.GestureWindow(), log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.AuthStatus, middleware.ClientSession)

	// ============================================================
	// LISTING QUERIES (без сессии)
	// ============================================================

	api.HandleFunc("/listings/{listingId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/listings/{listingId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// ============================================================
	// BOOKING SESSIONS
	// ============================================================

	api.HandleFunc("/listings/{listingId}/sessions", openSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/listing", changeListing.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/events", submitEvent.Handle).Methods(http.MethodPost)

	// Жесты, повторное нажатие которых подавляется
	api.Handle("/sessions/{sessionId}/start",
		gestureGuard.Middleware(http.HandlerFunc(startBooking.Handle))).Methods(http.MethodPost)
	api.Handle("/sessions/{sessionId}/resume",
		gestureGuard.Middleware(http.HandlerFunc(resumeDraft.Handle))).Methods(http.MethodPost)

	// Фоновая очистка брошенных сессий
	workerCtx, stopWorker := context.WithCancel(context.Background())
	sweeper := worker.NewIdleSweeper(
		sessionsSvc,
		draftPurger,
		cfg.Sessions.IdleTTLDuration(),
		cfg.Sessions.SweepIntervalDuration(),
		log,
	)
	workerDone := make(chan struct{})
	go func() {
		sweeper.Start(workerCtx)
		close(workerDone)
	}()

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopWorker()
	<-workerDone

	// Дожидаемся фоновых загрузок доступности, пока БД еще открыта
	sessionsSvc.Wait()

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close intent publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
