package store

import (
	"context"
	"database/sql"
	"net"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/models"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, DialectPostgres)
	return &accountRepository{db: db, logger: logger.Nop()}, mock
}

func TestAccountRepository_Create_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	fullName := "Alice"

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO accounts (email,full_name,password_hash,is_active,created_at) VALUES ($1,$2,$3,$4,$5) " +
			"RETURNING id, email, full_name, password_hash, is_active, created_at")).
		WithArgs("a@x.com", "Alice", "$argon2id$hash", true, testCreatedAt).
		WillReturnRows(accountRows().AddRow(1, "a@x.com", "Alice", "$argon2id$hash", true, testCreatedAt))

	created, err := repo.Create(context.Background(), models.Account{
		Email:        "a@x.com",
		FullName:     &fullName,
		PasswordHash: "$argon2id$hash",
		IsActive:     true,
		CreatedAt:    testCreatedAt,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	require.NotNil(t, created.FullName)
	assert.Equal(t, "Alice", *created.FullName)
	assert.True(t, created.IsActive)
	assert.Equal(t, testCreatedAt, created.CreatedAt)
}

func TestAccountRepository_Create_NilFullName(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("a@x.com", nil, "h", true, sqlmock.AnyArg()).
		WillReturnRows(accountRows().AddRow(1, "a@x.com", nil, "h", true, testCreatedAt))

	created, err := repo.Create(context.Background(), models.Account{Email: "a@x.com", PasswordHash: "h", IsActive: true})

	require.NoError(t, err)
	assert.Nil(t, created.FullName)
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Create(context.Background(), models.Account{Email: "a@x.com", PasswordHash: "h"})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAccountRepository_Create_Unavailable(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: assert.AnError})

	_, err := repo.Create(context.Background(), models.Account{Email: "a@x.com", PasswordHash: "h"})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, email, full_name, password_hash, is_active, created_at FROM accounts WHERE email = $1")).
		WithArgs("a@x.com").
		WillReturnRows(accountRows().AddRow(7, "a@x.com", nil, "h", true, testCreatedAt))

	account, err := repo.FindByEmail(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)
	assert.Equal(t, "h", account.PasswordHash)
}

func TestAccountRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email").
		WithArgs("ghost@x.com").
		WillReturnRows(accountRows())

	_, err := repo.FindByEmail(context.Background(), "ghost@x.com")

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepository_FindByID(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(accountRows().AddRow(7, "a@x.com", "Alice", "h", false, testCreatedAt))

	account, err := repo.FindByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", account.Email)
	assert.False(t, account.IsActive)
}

func TestAccountRepository_FindByID_ConnDone(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("FROM accounts WHERE id").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.FindByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestAccountRepository_Delete(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 7))
}

func TestAccountRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 7), ErrAccountNotFound)
}
