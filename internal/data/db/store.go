package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the relational store. DSN is a file path (or ":memory:") for SQLite
// and a connection URL for Postgres.
type Config struct {
	Driver        string
	DSN           string
	SlowThreshold time.Duration
	Silent        bool
}

type StoreService struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func NewStoreService(logg *logger.Logger, cfg Config) (*StoreService, error) {
	serviceLog := logg.With("service", "StoreService")

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	if cfg.Silent {
		gormLog = gormLog.LogMode(gormLogger.Silent)
	}
	gormCfg := &gorm.Config{Logger: gormLog}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		path := strings.TrimSpace(cfg.DSN)
		if path == "" {
			return nil, fmt.Errorf("sqlite store requires a database path")
		}
		if path != ":memory:" && !strings.HasPrefix(path, "file:") {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// One connection: the pragma below is per connection, an in-memory database
		// is per connection, and SQLite serializes writers anyway.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	serviceLog.Info("store opened", "driver", driver, "dsn", cfg.DSN)
	return &StoreService{db: db, driver: driver, log: serviceLog}, nil
}

func (s *StoreService) DB() *gorm.DB { return s.db }

func (s *StoreService) Driver() string { return s.driver }

func (s *StoreService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

func (s *StoreService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
