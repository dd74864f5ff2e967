package service

import (
	"context"
	"errors"
	"fmt"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	metrics    *LedgerMetrics
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl. metrics may be nil.
func NewWalletService(
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	metrics *LedgerMetrics,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		transactor: transactor,
		metrics:    metrics,
		log:        log,
	}
}

// CreateWallet persists a new wallet with a zero balance.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context) (*domain.Wallet, error) {
	wallet := &domain.Wallet{
		ID:      uuid.New(),
		Balance: decimal.Zero,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().Str("wallet_id", wallet.ID.String()).Msg("wallet created")
	return wallet, nil
}

// GetWallet returns the committed state of a wallet without locking it.
func (s *WalletServiceImpl) GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// ApplyOperation deposits to or withdraws from a wallet under its row lock.
// Any failure leaves the balance unchanged.
func (s *WalletServiceImpl) ApplyOperation(ctx context.Context, id uuid.UUID, kind domain.OperationType, amount decimal.Decimal) (wallet *domain.Wallet, err error) {
	defer func() { s.metrics.Observe(kind, err) }()

	if !domain.IsValidAmount(amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get wallet
	current, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, id)
	if err != nil {
		return nil, storageError("lock wallet", err)
	}
	if current == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	var newBalance decimal.Decimal
	switch kind {
	case domain.OperationDeposit:
		newBalance = current.Balance.Add(amount)
		if newBalance.GreaterThan(domain.MaxBalance) {
			return nil, apperror.ErrBalanceLimitExceeded()
		}
	case domain.OperationWithdraw:
		// Business rule: sufficient funds
		if current.Balance.LessThan(amount) {
			return nil, apperror.ErrInsufficientFunds()
		}
		newBalance = current.Balance.Sub(amount)
	default:
		return nil, apperror.ErrInvalidOperation()
	}

	updated, err := s.walletRepo.UpdateBalance(ctx, dbTx, id, newBalance)
	if err != nil {
		return nil, storageError("update balance", err)
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, storageError("commit tx", err)
	}

	s.log.Info().
		Str("wallet_id", id.String()).
		Str("operation", string(kind)).
		Str("amount", domain.FormatBalance(amount)).
		Str("balance", domain.FormatBalance(updated.Balance)).
		Msg("wallet operation applied")

	return updated, nil
}

// storageError separates retryable lock waits from other storage failures.
func storageError(op string, err error) *apperror.AppError {
	if errors.Is(err, ports.ErrLockTimeout) {
		return apperror.ErrLockTimeout(fmt.Errorf("%s: %w", op, err))
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}
