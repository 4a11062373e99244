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

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/health"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/directory"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/internal/policy"
	"github.com/m04kA/SMC-ReservationService/internal/retention"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	updateReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/validator"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/keymutex"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// reservationStore общий контракт SQL и in-memory хранилищ
type reservationStore interface {
	createReservationUC.ReservationRepository
	updateReservationUC.ReservationRepository
	getAvailabilityUC.ReservationRepository
	reservationsService.ReservationRepository
	retention.Purger
}

type transactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	createReservationUC.EventPublisher
	Close() error
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Правила бронирования и каталог
	loc, err := cfg.Policy.LoadLocation()
	if err != nil {
		return err
	}
	engine, err := policy.NewEngine(policy.Config{
		OpeningStart:         cfg.Policy.OpeningStart,
		OpeningEnd:           cfg.Policy.OpeningEnd,
		LockThresholdMinutes: cfg.Policy.LockThresholdMinutes,
		Location:             loc,
	})
	if err != nil {
		return err
	}
	catalog := domain.NewCatalog(catalogFromConfig(cfg.Resources))
	log.Info("Policy: opening %s-%s, lock %d min, location %s, %d resources",
		cfg.Policy.OpeningStart, cfg.Policy.OpeningEnd, cfg.Policy.LockThresholdMinutes, loc, len(cfg.Resources))

	// Хранилище
	var (
		store  reservationStore
		txMgr  transactionManager
		pinger health.Pinger
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = memory.NewRepository()
		txMgr = memory.TxManager{}
		log.Warn("Using in-memory storage, reservations are lost on restart")

	default:
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("Successfully connected to %s database", cfg.Database.Driver)

		applied, err := migrations.Run(ctx, db, cfg.Database.Driver, log)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Info("Migrations applied: %d", applied)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		repo, err := reservationRepo.NewRepository(wrappedDB, cfg.Database.Driver)
		if err != nil {
			return err
		}
		store = repo
		txMgr = txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Database.TxMaxRetries))
		pinger = wrappedDB
	}

	// События
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, log)
		if err != nil {
			return err
		}
		publisher = kafkaPublisher
		log.Info("Publishing events to topic %s (%v)", cfg.Events.Topic, cfg.Events.Brokers)
	}
	defer publisher.Close()

	// Роли администраторов
	var directoryClient middleware.DirectoryClient
	if cfg.Auth.DirectoryURL != "" {
		directoryClient = directory.NewClient(
			cfg.Auth.DirectoryURL,
			time.Duration(cfg.Auth.DirectoryTimeout)*time.Second,
			log,
		)
		log.Info("Admin roles resolved by directory %s", cfg.Auth.DirectoryURL)
	}
	admins := middleware.NewAdmins(cfg.Auth.Admins, directoryClient)

	// Use cases и сервисы
	locker := keymutex.New()
	requestValidator, err := validator.New()
	if err != nil {
		return err
	}

	createReservationUseCase := createReservationUC.NewUseCase(
		store, engine, catalog, requestValidator, locker, txMgr, publisher, metricsCollector, log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		store, engine, catalog, requestValidator, locker, txMgr, publisher, metricsCollector, log,
	).WithLockRescheduledStart(cfg.Policy.LockRescheduledStart)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(store, engine, catalog, log)
	reservationSvc := reservationsService.NewService(
		store, engine, txMgr, publisher, metricsCollector, cfg.Policy.RetainCancelled, log,
	)

	// Очистка отменённых бронирований
	if cfg.Retention.Enabled {
		job, err := retention.NewJob(store, cfg.Retention.Schedule, time.Duration(cfg.Retention.MaxAge)*24*time.Hour, log)
		if err != nil {
			return err
		}
		if err := job.Start(); err != nil {
			return err
		}
		defer job.Stop()
	}

	router := api.NewRouter(api.Dependencies{
		CreateReservation: createReservationUseCase,
		UpdateReservation: updateReservationUseCase,
		GetAvailability:   getAvailabilityUseCase,
		Reservations:      reservationSvc,
		Catalog:           catalog,
		Policy:            engine,
		DB:                pinger,
		UserHeader:        cfg.Auth.UserHeader,
		Admins:            admins,
		Metrics:           metricsCollector,
		MetricsPath:       cfg.Metrics.Path,
		Logger:            log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.Logging(log)(router),
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

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

func catalogFromConfig(items []config.ResourceConfig) []domain.Resource {
	resources := make([]domain.Resource, 0, len(items))
	for _, r := range items {
		resources = append(resources, domain.Resource{ID: r.ID, Name: r.Name, Category: r.Category})
	}
	return resources
}
