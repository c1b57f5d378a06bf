package rpc

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/resonate/core/internal/errors"
)

func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.Validation(verrs[0].Field()+" failed "+verrs[0].Tag(), err)
	}
	return apperrors.Validation("invalid request", err)
}
