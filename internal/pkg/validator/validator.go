package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("vaccine", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseVaccine(fl.Field().String())
		return err == nil
	})
}

// Validate checks a struct and converts validation failures into INVALID_INPUT.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.InvalidInput("%s", err.Error())
	}

	fields := make([]string, 0, len(verrs))
	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		details[fe.Field()] = fmt.Sprintf("failed on '%s'", fe.Tag())
	}

	appErr := apperrors.InvalidInput("invalid fields: %s", strings.Join(fields, ", "))
	return appErr.WithDetails(details)
}

// GetValidator exposes the shared instance for custom registrations.
func GetValidator() *validator.Validate {
	return validate
}
