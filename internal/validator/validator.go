package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/studyfeed/content-service/internal/errors"
)

// Validator wraps go-playground struct validation and converts its
// failures into the service error taxonomy.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance
func New() *Validator {
	structValidator := validator.New()

	// Report json tag names instead of Go field names in errors.
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{structValidator: structValidator}
}

// ValidateStruct validates struct tags and returns a ValidationErrors
// value on failure, nil otherwise.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}
	if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
		return converted
	}
	return apperrors.ValidationErrors{
		{Field: "payload", Message: err.Error()},
	}
}
