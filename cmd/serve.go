package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bulkCreateAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/bulk_create_availability"
	createAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_availability"
	createTemplateHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_template"
	deleteAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_availability"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	listAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_availability"
	listTemplatesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_templates"
	searchSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/search_slots"
	updateAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/searchcache"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/migrations"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/template"
	providerServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	slotsService "github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	templatesService "github.com/m04kA/SMC-AvailabilityService/internal/service/templates"
	createAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_availability"
	deleteAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/delete_availability"
	updateAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func runServer(configPath string, migrate bool) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrate {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			return err
		}
		if err := migrator.Up(context.Background()); err != nil {
			return err
		}
	}

	// Без метрик обёртка только пробрасывает запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	txOpts := []txmanager.Option{txmanager.WithMaxRetries(cfg.Database.TxMaxRetries)}
	if metricsCollector != nil {
		txOpts = append(txOpts, txmanager.WithRetryObserver(metricsCollector))
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, txOpts...)

	// Репозитории
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	templateRepository := templateRepo.NewRepository(wrappedDB)

	// Интеграция с ProviderService (пустой URL отключает)
	var providerClient createAvailabilityUC.ProviderServiceClient
	if cfg.ProviderService.URL != "" {
		providerClient = providerServiceClient.NewClient(
			cfg.ProviderService.URL,
			time.Duration(cfg.ProviderService.Timeout)*time.Second,
			log,
		)
		log.Info("ProviderService client initialized (url=%s, timeout=%ds)",
			cfg.ProviderService.URL, cfg.ProviderService.Timeout)
	} else {
		log.Warn("ProviderService URL is empty, provider lookup disabled")
	}

	// Кэш поиска слотов
	var searchCache slotsService.SearchCache
	if cfg.Redis.Enabled {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := searchcache.NewClient(pingCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			log.Warn("Redis unavailable, search cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			searchCache = searchcache.NewCache(redisClient, cfg.Redis.TTLDuration())
			log.Info("Search cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTLDuration())
		}
	}

	// Сервисы
	availabilitySvc := availabilityService.NewService(availabilityRepository, slotRepository, log)
	templatesSvc := templatesService.NewService(templateRepository, log)
	slotsSvc := slotsService.NewService(slotRepository, searchCache, log)

	// Use cases
	createAvailabilityUseCase := createAvailabilityUC.NewUseCase(
		availabilityRepository,
		slotRepository,
		providerClient,
		txMgr,
		metricsCollector,
		log,
	)
	updateAvailabilityUseCase := updateAvailabilityUC.NewUseCase(
		availabilityRepository,
		slotRepository,
		txMgr,
		cfg.Availability.ShouldValidateOnUpdate(),
		metricsCollector,
		log,
	)
	deleteAvailabilityUseCase := deleteAvailabilityUC.NewUseCase(
		availabilityRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Handlers
	createAvailability := createAvailabilityHandler.NewHandler(createAvailabilityUseCase, log)
	bulkCreateAvailability := bulkCreateAvailabilityHandler.NewHandler(createAvailabilityUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(updateAvailabilityUseCase, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(deleteAvailabilityUseCase, log)
	createTemplate := createTemplateHandler.NewHandler(templatesSvc, log)
	listTemplates := listTemplatesHandler.NewHandler(templatesSvc, log)
	searchSlots := searchSlotsHandler.NewHandler(slotsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1/provider").Subrouter()

	// Статические пути регистрируются раньше /availability/{availabilityId}
	api.HandleFunc("/availability/bulk", bulkCreateAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/search", searchSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/templates", createTemplate.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/templates", listTemplates.Handle).Methods(http.MethodGet)

	api.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability", listAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{availabilityId}", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{availabilityId}", updateAvailability.Handle).Methods(http.MethodPut)
	api.HandleFunc("/availability/{availabilityId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		close(stopMetricsCh)
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")
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
	return nil
}
