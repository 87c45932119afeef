// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/models"
)

var accountsTable = models.Account{}.TableName()

var accountColumns = []string{"id", "email", "full_name", "password_hash", "is_active", "created_at"}

// accountRepository is the SQL implementation of [AccountRepository].
// It handles account creation, lookup and removal against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new account and returns the fully populated
// [models.Account] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - connection failure → [ErrStoreUnavailable].
func (r *accountRepository) Create(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(accountsTable).
		Columns("email", "full_name", "password_hash", "is_active", "created_at").
		Values(account.Email, nullableArg(account.FullName), account.PasswordHash, account.IsActive, account.CreatedAt.UTC()).
		Suffix(returning(accountColumns)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Create").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Create").Msg("failed to insert account")
		err = r.db.wrapError(err)
		if errors.Is(err, ErrUniqueViolation) {
			return models.Account{}, fmt.Errorf("%w: %w", ErrEmailAlreadyExists, err)
		}
		return models.Account{}, err
	}

	return created, nil
}

// FindByID retrieves the account with the given identifier.
func (r *accountRepository) FindByID(ctx context.Context, id int64) (models.Account, error) {
	return r.findBy(ctx, "*accountRepository.FindByID", "id", id)
}

// FindByEmail retrieves the account whose email matches exactly.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findBy(ctx, "*accountRepository.FindByEmail", "email", email)
}

func (r *accountRepository) findBy(ctx context.Context, funcName, column string, value any) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(column+" = ?", value).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to find account")
		return models.Account{}, r.db.wrapError(err)
	}

	return account, nil
}

// Delete removes the account. Its items are removed by the
// ON DELETE CASCADE foreign key.
func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(accountsTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Delete").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Delete").Int64("account_id", id).Msg("failed to delete account")
		return r.db.wrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.db.wrapError(err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func scanAccount(row rowScanner) (models.Account, error) {
	var account models.Account
	var fullName sql.NullString

	err := row.Scan(
		&account.ID,
		&account.Email,
		&fullName,
		&account.PasswordHash,
		&account.IsActive,
		timestamp{dst: &account.CreatedAt},
	)
	if err != nil {
		return models.Account{}, err
	}

	account.FullName = nullableString(fullName)
	return account, nil
}

// returning renders a RETURNING clause for columns.
func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// nullableArg turns an optional string into a driver argument.
func nullableArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
