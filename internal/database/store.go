package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/adamanr/departments_service/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	departmentsTable = "departments"
	employeesTable   = "employees"

	foreignKeyViolation = "23503"
)

// DB is the part of pgxpool.Pool the store uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// Store keeps departments and their employees in PostgreSQL.
type Store struct {
	db     DB
	logger *slog.Logger
	psql   sq.StatementBuilderType
}

func NewStore(db DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id   BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id            BIGSERIAL PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		date_of_birth DATE NOT NULL,
		salary        DOUBLE PRECISION NOT NULL CHECK (salary > 0),
		department_id BIGINT REFERENCES departments (id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS employees_department_id_idx ON employees (department_id)`,
}

// EnsureSchema creates the tables when they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			s.logger.Error("Error creating schema", slog.String("error", err.Error()))
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) update(ctx context.Context, table string, id int64, changes []validation.Field) error {
	builder := s.psql.Update(table).Where(sq.Eq{"id": id})

	applied := 0
	for _, f := range changes {
		if !f.Set {
			continue
		}
		builder = builder.Set(f.Name, f.Value)
		applied++
	}

	if applied == 0 {
		return nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", table, err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			s.logger.Warn("Update rejected by foreign key", slog.String("table", table), slog.Int64("id", id))
			return apperrors.Wrap(apperrors.ErrIntegrityViolation, "update references a missing row", err)
		}

		s.logger.Error("Error updating row", slog.String("table", table), slog.String("error", err.Error()))
		return fmt.Errorf("update %s: %w", table, err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("%s %d doesn't exist", kindOf(table), id))
	}

	return nil
}

func (s *Store) delete(ctx context.Context, table string, id int64) error {
	query, args, err := s.psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", table, err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			s.logger.Warn("Delete rejected by foreign key", slog.String("table", table), slog.Int64("id", id))
			return apperrors.Wrap(apperrors.ErrIntegrityViolation, "row is still referenced", err)
		}

		s.logger.Error("Error deleting row", slog.String("table", table), slog.String("error", err.Error()))
		return fmt.Errorf("delete %s: %w", table, err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("%s %d doesn't exist", kindOf(table), id))
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

func kindOf(table string) string {
	switch table {
	case departmentsTable:
		return "Department"
	case employeesTable:
		return "Employee"
	default:
		return table
	}
}
