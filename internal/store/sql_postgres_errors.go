package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
// It tells repositories how a failed statement should be re-signalled.
type ErrorClassification int

const (
	// Unclassified is the default for errors that carry no special meaning:
	// syntax errors, data exceptions and anything unrecognised.
	Unclassified ErrorClassification = iota

	// Unavailable indicates that the store could not be reached
	// (connection refused, dropped connection, server shutting down).
	Unavailable

	// UniqueViolation indicates that a unique constraint rejected the row.
	UniqueViolation

	// ForeignKeyViolation indicates that a referenced row does not exist.
	ForeignKeyViolation
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver and maps it
// to an [ErrorClassification] value.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. It attempts to unwrap err as a
// *pgconn.PgError and delegates to [ClassifyPgError]. Errors that are not
// PostgreSQL server errors are checked for connectivity failures.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Unclassified
	}

	// Attempt to unwrap to a pgconn.PgError.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Unavailable
	}

	if isConnectivityError(err) {
		return Unavailable
	}

	return Unclassified
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
// Unavailable codes:
//   - Class 08: connection exceptions
//   - Class 57: admin shutdown, crash shutdown, cannot connect now
//
// Constraint codes:
//   - 23505 unique_violation
//   - 23503 foreign_key_violation
//
// Any code not listed above is [Unclassified].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	// Class 08: connection exceptions
	if pgerrcode.IsConnectionException(pgErr.Code) {
		return Unavailable
	}

	switch pgErr.Code {
	// Class 57: operator intervention (query_canceled is not an outage)
	case pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.CannotConnectNow:
		return Unavailable

	// Class 23: integrity constraint violations
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	}

	return Unclassified
}

// isConnectivityError reports driver-independent connection failures.
func isConnectivityError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	// a cancelled request is not an outage
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
