package handlers

import (
	"errors"

	"github.com/shopline/catalog-service/internal/validation"
	apperrors "github.com/shopline/catalog-service/pkg/util/errorutil"
)

// validationFailed renders validation.Errors as a 400 with per-field details.
func validationFailed(err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return apperrors.NewValidationError(validation.MsgFailed, map[string]any{"errors": errs})
	}
	return apperrors.NewValidationError(validation.MsgFailed, nil)
}
