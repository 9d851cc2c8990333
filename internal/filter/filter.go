package filter

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/adamanr/departments_service/internal/entity"
)

// Departments builds the predicate of a department listing.
// With no filters it matches every row.
func Departments(params entity.GetDepartmentsParams) sq.Sqlizer {
	where := sq.And{}

	if len(params.ID) > 0 {
		where = append(where, sq.Eq{"id": params.ID})
	}

	if params.Name != nil {
		where = append(where, sq.Eq{"name": *params.Name})
	}

	return where
}

// Employees builds the predicate of an employee listing. Birth date bounds
// are inclusive and independent of each other.
func Employees(params entity.GetEmployeesParams) (sq.Sqlizer, error) {
	where := sq.And{}

	if len(params.ID) > 0 {
		where = append(where, sq.Eq{"id": params.ID})
	}

	if params.DateOfBirthStart != nil {
		start, err := parseDate("date_of_birth_start", *params.DateOfBirthStart)
		if err != nil {
			return nil, err
		}
		where = append(where, sq.GtOrEq{"date_of_birth": start})
	}

	if params.DateOfBirthEnd != nil {
		end, err := parseDate("date_of_birth_end", *params.DateOfBirthEnd)
		if err != nil {
			return nil, err
		}
		where = append(where, sq.LtOrEq{"date_of_birth": end})
	}

	return where, nil
}

func parseDate(param, value string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrBadRequest,
			fmt.Sprintf("Please provide %s in %s format", param, entity.DateLayout), err)
	}

	return t, nil
}
