package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"detail"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithStatus returns a copy of the error answered with a different HTTP status.
func (e *AppError) WithStatus(httpStatus int) *AppError {
	cp := *e
	cp.HTTPStatus = httpStatus
	return &cp
}

// WithCause returns a copy of the error carrying err as its internal cause.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Incorrect email or password", http.StatusBadRequest)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Could not validate credentials", http.StatusUnauthorized)
}

func ErrInvalidRefreshToken() *AppError {
	return New("AUTH_004", "Invalid refresh token", http.StatusUnauthorized)
}

func ErrUnknownSubject() *AppError {
	return New("AUTH_005", "User not found", http.StatusUnauthorized)
}

// ---- Wallet Ledger (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

func ErrInvalidOperation() *AppError {
	return New("WAL_002", "Invalid operation type", http.StatusBadRequest)
}

func ErrInsufficientFunds() *AppError {
	return New("WAL_003", "Insufficient funds", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_004", "Invalid amount", http.StatusBadRequest)
}

func ErrBalanceLimitExceeded() *AppError {
	return New("WAL_004", "Amount exceeds wallet balance limit", http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Wallet is busy, retry the operation", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrPayloadTooLarge() *AppError {
	return New("VAL_002", "Request body too large", http.StatusRequestEntityTooLarge)
}
