package postgres

import (
	"context"
	"errors"
	"testing"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletColumns() []string {
	return []string{"id", "balance"}
}

func walletRow(id uuid.UUID, balance string) *pgxmock.Rows {
	return pgxmock.NewRows(walletColumns()).AddRow(id, balance)
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := &domain.Wallet{ID: uuid.New(), Balance: decimal.Zero}

	mock.ExpectQuery("INSERT INTO wallets").
		WithArgs(w.ID, "0").
		WillReturnRows(walletRow(w.ID, "0.00"))

	err = repo.Create(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, "0.00", domain.FormatBalance(w.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := &domain.Wallet{ID: uuid.New()}

	mock.ExpectQuery("INSERT INTO wallets").
		WithArgs(w.ID, "0").
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert wallet")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(walletRow(id, "1000.50"))

	result, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, id, result.ID)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(result.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID_BadBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(walletRow(id, "not-a-number"))

	_, err = repo.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse balance")
}

func TestWalletRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id .+ FOR UPDATE").
		WithArgs(id).
		WillReturnRows(walletRow(id, "12.30"))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), tx, id)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, id, result.ID)
	assert.Equal(t, "12.30", domain.FormatBalance(result.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByIDForUpdate_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id .+ FOR UPDATE").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), tx, id)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByIDForUpdate_LockTimeout(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FOR UPDATE").
		WithArgs(id).
		WillReturnError(&pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"})

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), tx, id)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ports.ErrLockTimeout)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE wallets SET balance").
		WithArgs("1500.00", id).
		WillReturnRows(walletRow(id, "1500.00"))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.UpdateBalance(context.Background(), tx, id, decimal.NewFromInt(1500))
	require.NoError(t, err)
	assert.Equal(t, "1500.00", domain.FormatBalance(result.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalance_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE wallets SET balance").
		WithArgs("1.00", id).
		WillReturnError(pgx.ErrNoRows)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	_, err = repo.UpdateBalance(context.Background(), tx, id, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
