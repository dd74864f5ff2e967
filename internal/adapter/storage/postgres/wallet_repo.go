package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
// Balances cross the driver boundary as numeric text so no float conversion happens.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet and refreshes w with the stored balance.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, balance) VALUES ($1, $2::numeric)
		RETURNING id, balance::text`

	stored, err := scanWallet(r.pool.QueryRow(ctx, query, w.ID, w.Balance.String()))
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	*w = *stored
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, balance::text FROM wallets WHERE id = $1`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction; the lock is held until it ends.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, balance::text FROM wallets WHERE id = $1 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, lockError("get wallet for update by id", err)
	}
	return w, nil
}

// UpdateBalance overwrites a wallet's balance within a transaction and returns the stored row.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) (*domain.Wallet, error) {
	query := `UPDATE wallets SET balance = $1::numeric WHERE id = $2
		RETURNING id, balance::text`

	w, err := scanWallet(tx.QueryRow(ctx, query, balance.StringFixed(domain.BalanceScale), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("wallet not found: %s", id)
		}
		return nil, lockError("update wallet balance", err)
	}
	return w, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		w       domain.Wallet
		balance string
	)
	if err := row.Scan(&w.ID, &balance); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	w.Balance = parsed
	return &w, nil
}
