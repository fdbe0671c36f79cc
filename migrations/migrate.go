// Package migrations embeds the goose schema migrations of every supported
// database dialect.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// dialects maps a storage driver name onto the goose dialect and the
// migration directory inside embedMigrations.
var dialects = map[string]struct {
	dialect goose.Dialect
	dir     string
}{
	"postgres": {dialect: goose.DialectPostgres, dir: "postgres"},
	"sqlite":   {dialect: goose.DialectSQLite3, dir: "sqlite"},
}

// Migrate applies all pending migrations of driver ("postgres" or "sqlite").
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(d.dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
