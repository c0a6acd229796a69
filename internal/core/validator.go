package core

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"weatherdesk/internal/types"
)

// Validator wraps go-playground/validator for request input.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a Validator that reports fields by their json tag name.
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: v,
		logger:   logger,
	}
}

// ValidateStruct checks s against its validate tags. Failures are returned as
// a *types.AppError whose details map each offending field to its rule. A
// missing required field uses the missing-field code.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		v.logger.Error("validator misuse", "error", err)
		return types.NewAppError(types.ErrCodeInternalUnexpected, "validation failed", err)
	}

	code := types.ErrCodeValidationInvalidForm
	fields := make(map[string]any, len(verrs))
	var missing []string
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	message := "invalid input"
	if len(missing) > 0 {
		code = types.ErrCodeValidationMissingField
		message = "missing required field: " + strings.Join(missing, ", ")
	}

	return types.NewAppError(code, message, err).WithDetails(map[string]any{"fields": fields})
}
