package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/M0rdr3d/lisk/pkg/config"
	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const DefaultDatabaseName = "filterd"

func NewDBConnection(logger *logrus.Entry, cfg config.StorageConfig) (*gorm.DB, error) {
	switch cfg.Provider {
	case config.SQLite:
		return CreateSQLiteDBConnection(logger, cfg.SQLite, DefaultDatabaseName)
	case config.Postgres:
		database := cfg.Postgres.Database
		if database == "" {
			database = DefaultDatabaseName
		}
		return CreatePostgresDBConnection(logger, cfg.Postgres, database)
	default:
		return nil, fmt.Errorf("%w: '%s'", errs.ErrUnknownStorage, cfg.Provider)
	}
}

// Ping returns a check of the connection pool behind db, suitable for the
// health endpoint.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func CreatePostgresDBConnection(logger *logrus.Entry, cfg config.PostgresConfig, database string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", cfg.Hostname, cfg.Username, cfg.Password, database, cfg.Port)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
}

func sqliteDSN(cfg config.SQLiteConfig, database string) string {
	if cfg.InMemory {
		return fmt.Sprintf("file:%s?mode=memory&cache=shared", database)
	}
	return cfg.DatabasePath
}

func CreateSQLiteDBConnection(logger *logrus.Entry, cfg config.SQLiteConfig, database string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(cfg, database)), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		// LIKE filters behave like PostgreSQL ILIKE
		"PRAGMA case_sensitive_like = OFF",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("could not apply '%s': %w", pragma, err)
		}
	}

	return db, nil
}
