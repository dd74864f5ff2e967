package ports

import (
	"context"
	"errors"
	"time"

	"wallet-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// ErrInvalidToken wraps every token verification failure.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	IssueAccessToken(subject string) (string, time.Time, error)
	IssueRefreshToken(subject string) (string, time.Time, error)
	Verify(tokenString string, kind domain.TokenKind) (*TokenClaims, error)
}

// TokenClaims holds the verified JWT claims.
type TokenClaims struct {
	Subject   string
	Kind      domain.TokenKind
	ExpiresAt time.Time
}

// --- Service Ports (Business Logic) ---

// AuthService defines authentication business logic.
type AuthService interface {
	// Authenticate returns ok=false, without error, for an unknown email or a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, bool, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, time.Time, error)
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}

// WalletService is the wallet ledger core.
type WalletService interface {
	CreateWallet(ctx context.Context) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	ApplyOperation(ctx context.Context, id uuid.UUID, kind domain.OperationType, amount decimal.Decimal) (*domain.Wallet, error)
}
