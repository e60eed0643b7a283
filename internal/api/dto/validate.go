package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

var validate = validator.New()

// Validate runs struct validation and converts failures into a details map
// keyed by field name, valued by the failed rule.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return apperrors.NewValidationError("validation failed", details)
	}
	return apperrors.NewValidationError("validation failed", nil)
}
