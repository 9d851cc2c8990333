package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/adamanr/departments_service/internal/validation"
	"github.com/jackc/pgx/v5"
)

var departmentColumns = []string{"id", "name"}

// ListDepartments returns the departments matching where, ordered by id,
// each with the employees assigned to it.
func (s *Store) ListDepartments(ctx context.Context, where sq.Sqlizer) ([]entity.Department, error) {
	query, args, err := s.psql.Select(departmentColumns...).
		From(departmentsTable).
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build departments query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("Error querying departments", slog.String("error", err.Error()))
		return nil, err
	}

	departments, err := pgx.CollectRows(rows, pgx.RowToStructByName[entity.Department])
	if err != nil {
		s.logger.Error("Error collecting departments", slog.String("error", err.Error()))
		return nil, err
	}

	if len(departments) == 0 {
		return departments, nil
	}

	ids := make([]int64, 0, len(departments))
	for _, d := range departments {
		ids = append(ids, d.ID)
	}

	employees, err := s.ListEmployees(ctx, sq.Eq{"department_id": ids})
	if err != nil {
		return nil, err
	}

	byDepartment := make(map[int64][]entity.Employee, len(departments))
	for _, e := range employees {
		if e.DepartmentID != nil {
			byDepartment[*e.DepartmentID] = append(byDepartment[*e.DepartmentID], e)
		}
	}

	for i := range departments {
		departments[i].Employees = byDepartment[departments[i].ID]
	}

	return departments, nil
}

// FindDepartment returns nil without an error when no department has the id.
func (s *Store) FindDepartment(ctx context.Context, id int64) (*entity.Department, error) {
	query, args, err := s.psql.Select(departmentColumns...).
		From(departmentsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build department query: %w", err)
	}

	var department entity.Department
	if err = s.db.QueryRow(ctx, query, args...).Scan(&department.ID, &department.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		s.logger.Error("Error getting department", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	return &department, nil
}

func (s *Store) CreateDepartment(ctx context.Context, name string) (int64, error) {
	query, args, err := s.psql.Insert(departmentsTable).
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build department insert: %w", err)
	}

	var id int64
	if err = s.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		s.logger.Error("Error creating department", slog.String("error", err.Error()))
		return 0, err
	}

	return id, nil
}

// UpdateDepartment writes the set fields of changes to the department.
func (s *Store) UpdateDepartment(ctx context.Context, id int64, changes []validation.Field) error {
	return s.update(ctx, departmentsTable, id, changes)
}

// DeleteDepartment fails with apperrors.ErrIntegrityViolation while
// employees still reference the department.
func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	return s.delete(ctx, departmentsTable, id)
}
