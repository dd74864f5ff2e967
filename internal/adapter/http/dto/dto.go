package dto

import (
	"wallet-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TokenTypeBearer is the token_type reported with every issued token.
const TokenTypeBearer = "bearer"

// LoginForm is the form-encoded login body. Username carries the email.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RefreshRequest is the request body for the refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AccessTokenResponse is the response body for a refreshed access token.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public view of the authenticated user.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// WalletURI binds the wallet identifier path segment.
type WalletURI struct {
	UUID string `uri:"uuid" binding:"required,uuid"`
}

// OperationRequest is the request body for a balance operation.
// Amount accepts a JSON number or a numeric string.
type OperationRequest struct {
	OperationType string          `json:"operation_type" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,money"`
}

// WalletResponse is the public view of a wallet.
type WalletResponse struct {
	UUID    string `json:"uuid"`
	Balance string `json:"balance"`
}

// NewWalletResponse renders a wallet with a fixed two-digit balance.
func NewWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		UUID:    w.ID.String(),
		Balance: domain.FormatBalance(w.Balance),
	}
}
