package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Null values are reported as nil so that omitempty skips them. Valid
	// numbers are reported as pointers, so a supplied zero is still checked.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if val, ok := field.Interface().(null.Int64); ok && val.Valid {
			return &val.Int64
		}
		return nil
	}, null.Int64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return &val.Float64
		}
		return nil
	}, null.Float64{})

	return v
}

// Struct checks the validate tags of a payload and reports the first broken one.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(apperrors.ErrBadRequest, "Invalid request body", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "datetime":
		return apperrors.New(apperrors.ErrBadRequest,
			fmt.Sprintf("Please provide %s in %s format", fe.Field(), fe.Param()))
	case "max":
		return apperrors.New(apperrors.ErrBadRequest,
			fmt.Sprintf("Value for %s is longer than %s characters", fe.Field(), fe.Param()))
	case "gt":
		return apperrors.New(apperrors.ErrBadRequest,
			fmt.Sprintf("Please provide a valid identifier for %s", fe.Field()))
	default:
		return apperrors.New(apperrors.ErrBadRequest, fmt.Sprintf("Invalid value for %s", fe.Field()))
	}
}
