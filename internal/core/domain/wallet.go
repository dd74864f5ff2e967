package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceScale is the number of fractional digits kept for balances and amounts.
const BalanceScale = 2

// MaxBalance is the largest balance a numeric(18,2) column can hold.
var MaxBalance = decimal.RequireFromString("9999999999999999.99")

// Wallet is a balance-bearing account. Balance is never negative.
type Wallet struct {
	ID      uuid.UUID       `json:"uuid"`
	Balance decimal.Decimal `json:"balance"`
}

// OperationType is a requested balance mutation kind.
type OperationType string

const (
	OperationDeposit  OperationType = "DEPOSIT"
	OperationWithdraw OperationType = "WITHDRAW"
)

// IsValid reports whether t is one of the supported operation kinds.
func (t OperationType) IsValid() bool {
	return t == OperationDeposit || t == OperationWithdraw
}

// Limits on the decimal representation of an inbound amount. Anything outside
// them cannot be a valid amount and is rejected before it is rescaled.
const (
	maxIntegerDigits   = 16
	maxCoefficientBits = 128
)

// IsBounded reports whether d is small enough to compare, rescale or format
// cheaply. Exponents like 1e9999999 are not.
func IsBounded(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxIntegerDigits || exp < -(BalanceScale+maxIntegerDigits) {
		return false
	}
	return d.Coefficient().BitLen() <= maxCoefficientBits
}

// IsValidAmount reports whether amount is positive with at most
// BalanceScale fractional digits.
func IsValidAmount(amount decimal.Decimal) bool {
	if !IsBounded(amount) || !amount.IsPositive() {
		return false
	}
	return amount.Equal(amount.Truncate(BalanceScale))
}

// FormatBalance renders a balance with exactly BalanceScale fractional digits.
func FormatBalance(balance decimal.Decimal) string {
	return balance.StringFixed(BalanceScale)
}
