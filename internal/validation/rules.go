package validation

import (
	"fmt"
	"strings"

	"github.com/adamanr/departments_service/internal/apperrors"
)

// Field is one key of a request payload, in the order the payload declares it.
// Set reports whether the payload carries a value for the key.
type Field struct {
	Name  string
	Value any
	Set   bool
}

// AllRequiredFilled fails when any of the fields has no value.
func AllRequiredFilled(fields ...Field) error {
	missing := Unset(fields...)
	if len(missing) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(missing))
	for _, name := range missing {
		quoted = append(quoted, "'"+name+"'")
	}

	return apperrors.New(apperrors.ErrMissingFields,
		fmt.Sprintf("You haven't passed these parameters: [%s]", strings.Join(quoted, ", ")))
}

// Unset returns the names of fields without a value, keeping their order.
func Unset(fields ...Field) []string {
	var names []string
	for _, f := range fields {
		if !f.Set {
			names = append(names, f.Name)
		}
	}

	return names
}

// Pick returns the named fields, in the order they appear in fields.
func Pick(fields []Field, names ...string) []Field {
	picked := make([]Field, 0, len(names))
	for _, f := range fields {
		for _, name := range names {
			if f.Name == name {
				picked = append(picked, f)
				break
			}
		}
	}

	return picked
}

func AtLeastOneFilled(fields ...Field) error {
	for _, f := range fields {
		if f.Set {
			return nil
		}
	}

	return apperrors.New(apperrors.ErrEmptyUpdate, "Please provide at least one value to update")
}

// Exists fails when a lookup of kind by id came back empty.
func Exists[T any](record *T, kind string, id string) error {
	if record == nil {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("%s %s doesn't exist", kind, id))
	}

	return nil
}

// IsPositive fails on the first set numeric field whose value is not above zero.
// Unset fields and non numeric values are skipped.
func IsPositive(fields ...Field) error {
	for _, f := range fields {
		if !f.Set {
			continue
		}

		value, ok := number(f.Value)
		if ok && value <= 0 {
			return apperrors.New(apperrors.ErrNonPositiveValue,
				fmt.Sprintf("Please provide higher than zero value for %s", f.Name))
		}
	}

	return nil
}

func IDRequired(id string, operation string) error {
	if id == "" {
		return apperrors.New(apperrors.ErrMissingIdentifier, fmt.Sprintf("Please provide id for %s", operation))
	}

	return nil
}

// NoPathIDOnCollectionOps rejects list and create calls made on /resource/{id}.
func NoPathIDOnCollectionOps(id string) error {
	if id != "" {
		return apperrors.New(apperrors.ErrUnexpectedIdentifier, "Page not found")
	}

	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
