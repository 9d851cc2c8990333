package controllers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/adamanr/departments_service/internal/validation"
)

// Store is the persistence the controllers work against.
type Store interface {
	ListDepartments(ctx context.Context, where sq.Sqlizer) ([]entity.Department, error)
	FindDepartment(ctx context.Context, id int64) (*entity.Department, error)
	CreateDepartment(ctx context.Context, name string) (int64, error)
	UpdateDepartment(ctx context.Context, id int64, changes []validation.Field) error
	DeleteDepartment(ctx context.Context, id int64) error

	ListEmployees(ctx context.Context, where sq.Sqlizer) ([]entity.Employee, error)
	FindEmployee(ctx context.Context, id int64) (*entity.Employee, error)
	CreateEmployee(ctx context.Context, employee entity.Employee) (int64, error)
	UpdateEmployee(ctx context.Context, id int64, changes []validation.Field) error
	DeleteEmployee(ctx context.Context, id int64) error
}

type Controllers struct {
	DepartmentController *DepartmentController
	EmployeeController   *EmployeeController
}

type Dependens struct {
	Store  Store
	Logger *slog.Logger
}

func NewControllers(deps *Dependens) *Controllers {
	return &Controllers{
		DepartmentController: NewDepartmentController(deps),
		EmployeeController:   NewEmployeeController(deps),
	}
}

// reject logs a request the caller got wrong and hands the error back.
func reject(logger *slog.Logger, operation string, err error) error {
	logger.Warn("Request rejected", slog.String("operation", operation), slog.String("reason", err.Error()))
	return err
}

// parseID reports false for path ids that can never match a row.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// describe renders the supplied fields the way they appear in update messages,
// e.g. {'name': 'Test1_Edited', 'salary': 999}.
func describe(fields []validation.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.Set {
			continue
		}
		parts = append(parts, fmt.Sprintf("'%s': %s", f.Name, repr(f.Value)))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func repr(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return "'" + val + "'"
	case time.Time:
		return "'" + val.Format(entity.DateLayout) + "'"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
