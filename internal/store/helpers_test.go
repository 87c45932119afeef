package store

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
)

var testCreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const itemSelectColumns = "id, owner_id, name, category, room, cupboard, shelf, loft, inside_items, notes, image_name, image_path, created_at"

func newTestDB(t *testing.T, dialect Dialect) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = conn.Close()
	})

	return NewDB(conn, dialect, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "is_active", "created_at"})
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "name", "category", "room", "cupboard", "shelf", "loft",
		"inside_items", "notes", "image_name", "image_path", "created_at",
	})
}

// itemRow returns the column values of a minimal item, optional fields nil.
func itemRow(id, ownerID int64, name, room string) []driver.Value {
	return []driver.Value{id, ownerID, name, nil, room, nil, nil, nil, nil, nil, nil, nil, testCreatedAt}
}
