package handler

import (
	"errors"
	"net/http"

	"wallet-service/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// bindError translates a request binding failure into an AppError.
func bindError(err error) *apperror.AppError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperror.ErrPayloadTooLarge()
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "money" {
				return apperror.ErrInvalidAmount()
			}
		}
	}
	return apperror.Validation(err.Error())
}
