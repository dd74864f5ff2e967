package dto

import (
	"reflect"

	"wallet-service/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
}

// RegisterValidators installs the decimal type adapter and the money tag on v.
func RegisterValidators(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("money", validateMoney)
}

// unboundedAmount stands in for decimals too large to format. It never parses,
// so the money tag rejects it.
const unboundedAmount = "unbounded"

// decimalValue exposes decimals to the validator as their canonical string.
func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	if !domain.IsBounded(d) {
		return unboundedAmount
	}
	return d.String()
}

// validateMoney accepts positive amounts with at most two fractional digits
// that fit in a wallet balance.
func validateMoney(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil || !domain.IsBounded(amount) {
		return false
	}
	return domain.IsValidAmount(amount) && amount.LessThanOrEqual(domain.MaxBalance)
}
