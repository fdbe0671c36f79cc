package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/migrations"
)

// DB wraps a [sql.DB] together with the dialect-specific pieces the
// repositories need: the squirrel placeholder format and the driver error
// classifier.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// newDB binds conn to the dialect of driver.
func newDB(conn *sql.DB, driver string, log *logger.Logger) (*DB, error) {
	db := &DB{
		DB:     conn,
		driver: driver,
		logger: log,
	}

	switch driver {
	case config.DriverPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	case config.DriverSQLite:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	return db, nil
}

// NewConnectDB opens the database selected by cfg.Driver.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies all pending schema migrations of the connected dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator.IsUniqueViolation(err)
}

func (db *DB) classify(err error) ErrorClassification {
	return db.errorClassificator.Classify(err)
}
