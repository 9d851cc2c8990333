package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/adamanr/departments_service/internal/validation"
	"github.com/jackc/pgx/v5"
)

var employeeColumns = []string{"id", "name", "date_of_birth", "salary", "department_id"}

func (s *Store) ListEmployees(ctx context.Context, where sq.Sqlizer) ([]entity.Employee, error) {
	query, args, err := s.psql.Select(employeeColumns...).
		From(employeesTable).
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build employees query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("Error querying employees", slog.String("error", err.Error()))
		return nil, err
	}

	employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[entity.Employee])
	if err != nil {
		s.logger.Error("Error collecting employees", slog.String("error", err.Error()))
		return nil, err
	}

	return employees, nil
}

// FindEmployee returns nil without an error when no employee has the id.
func (s *Store) FindEmployee(ctx context.Context, id int64) (*entity.Employee, error) {
	query, args, err := s.psql.Select(employeeColumns...).
		From(employeesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build employee query: %w", err)
	}

	var employee entity.Employee
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&employee.ID,
		&employee.Name,
		&employee.DateOfBirth,
		&employee.Salary,
		&employee.DepartmentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		s.logger.Error("Error getting employee", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	return &employee, nil
}

// CreateEmployee inserts the employee and returns its new id. A department id
// that matches no department fails with apperrors.ErrIntegrityViolation.
func (s *Store) CreateEmployee(ctx context.Context, employee entity.Employee) (int64, error) {
	query, args, err := s.psql.Insert(employeesTable).
		Columns("name", "date_of_birth", "salary", "department_id").
		Values(employee.Name, employee.DateOfBirth, employee.Salary, employee.DepartmentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build employee insert: %w", err)
	}

	var id int64
	if err = s.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			s.logger.Warn("Employee references a missing department")
			return 0, apperrors.Wrap(apperrors.ErrIntegrityViolation, "department doesn't exist", err)
		}

		s.logger.Error("Error creating employee", slog.String("error", err.Error()))
		return 0, err
	}

	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id int64, changes []validation.Field) error {
	return s.update(ctx, employeesTable, id, changes)
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	return s.delete(ctx, employeesTable, id)
}
