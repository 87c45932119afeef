// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/migrations"
)

// Dialect identifies the SQL backend behind a [DB].
type Dialect string

const (
	// DialectPostgres is PostgreSQL accessed through the pgx stdlib driver.
	DialectPostgres Dialect = "postgres"

	// DialectSQLite is SQLite accessed through mattn/go-sqlite3.
	DialectSQLite Dialect = "sqlite3"
)

// DB wraps a *sql.DB with the dialect-specific pieces repositories need:
// a squirrel statement builder with the right placeholder format and an
// error classifier for driver errors.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an opened connection pool for the given dialect.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case DialectSQLite:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// NewConnect opens the database described by cfg.DSN. The DSN scheme picks
// the dialect: postgres:// and postgresql:// open PostgreSQL, sqlite:// and
// file: open SQLite.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, dsn, err := ParseDSN(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("unsupported database DSN")
		return nil, err
	}

	switch dialect {
	case DialectSQLite:
		return NewConnectSQLite(ctx, dsn, log)
	default:
		return NewConnectPostgres(ctx, dsn, log)
	}
}

// ParseDSN resolves the dialect of dsn and returns the string to hand to
// the driver.
func ParseDSN(dsn string) (Dialect, string, error) {
	dsn = strings.TrimSpace(dsn)
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return DialectSQLite, dsn[len("sqlite://"):], nil
	case strings.HasPrefix(lower, "file:"):
		return DialectSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// redactDSN keeps only the scheme of a DSN so credentials never reach logs.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if len(dsn) > 8 {
		return dsn[:8] + "..."
	}
	return dsn
}

// Dialect returns the SQL dialect of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// wrapError classifies a driver error and wraps it with the matching store
// sentinel so callers can use errors.Is.
func (db *DB) wrapError(err error) error {
	switch db.errorClassificator.Classify(err) {
	case Unavailable:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	case UniqueViolation:
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
