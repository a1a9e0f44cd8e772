package commands

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rachef/sitecms/internal/adapters/gateway"
	"github.com/rachef/sitecms/internal/adapters/notify"
	"github.com/rachef/sitecms/internal/adapters/repository"
	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/infrastructure/config"
	"github.com/rachef/sitecms/internal/infrastructure/database"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/infrastructure/metrics"
	"github.com/rachef/sitecms/internal/ports"
)

// app is the wired editing session shared by every command
type app struct {
	cfg         *config.Config
	logger      *logger.Logger
	registry    *prometheus.Registry
	feed        *notify.Feed
	store       *services.StoreService
	persistence *services.PersistenceService
	autosaver   *services.AutoSaver
	db          *database.DB
}

func loadApp(configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a, err := newApp(cfg, appLogger)
	if err != nil {
		_ = appLogger.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, appLogger *logger.Logger) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	feed := notify.NewFeed(cfg.Store.NotificationLimit)
	notifier := notify.Multi{feed, notify.NewLogNotifier(appLogger)}

	store := services.NewStoreService(notifier, appLogger,
		services.WithHistoryLimit(cfg.Store.HistoryLimit),
		services.WithBackupLimit(cfg.Store.BackupLimit),
		services.WithMetrics(metrics.NewStoreMetrics(registry)),
	)

	var (
		db      *database.DB
		archive ports.RevisionRepository
	)
	if cfg.Database.Enabled {
		var err error
		db, err = database.New(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to revision archive: %w", err)
		}
		if err := db.MigrateUp(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate revision archive: %w", err)
		}
		archive = repository.NewRevisionRepository(db.DB)
	}

	persistence := services.NewPersistenceService(store, gateway.New(cfg.Backend, appLogger), archive,
		services.UploadPolicy{MaxSize: cfg.Uploads.MaxSize, PublicPrefix: cfg.Uploads.PublicPrefix},
		appLogger,
	)

	return &app{
		cfg:         cfg,
		logger:      appLogger,
		registry:    registry,
		feed:        feed,
		store:       store,
		persistence: persistence,
		autosaver:   services.NewAutoSaver(persistence, store, cfg.AutoSave.Interval, appLogger),
		db:          db,
	}, nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warnw("Failed to close database", "error", err)
		}
	}
	_ = a.logger.Close()
}
