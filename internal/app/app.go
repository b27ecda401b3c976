package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	storedb "github.com/yungbote/redmane-backend/internal/data/db"
	httpserver "github.com/yungbote/redmane-backend/internal/http"
	"github.com/yungbote/redmane-backend/internal/observability"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Server   *httpserver.Server

	store        *storedb.StoreService
	otelShutdown func(context.Context) error
}

// New loads configuration, opens and migrates the store and wires the HTTP surface.
func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := OpenStore(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	a := Assemble(log, cfg, store.DB())
	a.store = store
	a.otelShutdown = observability.InitOTel(ctx, log, cfg.Otel)
	return a, nil
}

// OpenStore opens and migrates the configured store.
func OpenStore(log *logger.Logger, cfg Config) (*storedb.StoreService, error) {
	log.Info("Opening store...", "driver", cfg.Store.Driver, "dsn", cfg.Store.DSN)
	store, err := storedb.NewStoreService(log, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("store automigrate: %w", err)
	}
	return store, nil
}

// Assemble wires repos, services and handlers over an already opened handle.
func Assemble(log *logger.Logger, cfg Config, db *gorm.DB) *App {
	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(log)
	}
	reposet := wireRepos(db, log)
	serviceset := wireServices(db, log, metrics, reposet)
	handlerset := wireHandlers(db, log, serviceset)
	return &App{
		Log:      log,
		DB:       db,
		Cfg:      cfg,
		Metrics:  metrics,
		Repos:    reposet,
		Services: serviceset,
		Server:   wireServer(log, cfg, metrics, handlerset),
	}
}

func (a *App) Router() *gin.Engine {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Engine
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("store close failed", "error", err)
		}
		a.store = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
