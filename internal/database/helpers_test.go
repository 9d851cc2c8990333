package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockDB represents a mock database connection.
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	mockArgs := append([]any{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgx.Rows), callArgs.Error(1)
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	mockArgs := append([]any{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgx.Row)
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := append([]any{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgconn.CommandTag), callArgs.Error(1)
}

func (m *MockDB) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRow represents a mock database row.
type MockRow struct {
	data []any
	err  error
}

func NewMockRow(data []any, err error) *MockRow {
	return &MockRow{data: data, err: err}
}

func (m *MockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}

	return assign(dest, m.data)
}

// MockRows represents mock database rows.
type MockRows struct {
	rows       [][]any
	pos        int
	err        error
	fieldDescs []pgconn.FieldDescription
}

func NewMockRows(rows [][]any, err error, fieldDescs []pgconn.FieldDescription) *MockRows {
	return &MockRows{
		rows:       rows,
		pos:        -1,
		err:        err,
		fieldDescs: fieldDescs,
	}
}

func (m *MockRows) FieldDescriptions() []pgconn.FieldDescription {
	return m.fieldDescs
}

func (m *MockRows) Next() bool {
	m.pos++
	return m.pos < len(m.rows)
}

func (m *MockRows) Close() {}

func (m *MockRows) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if m.pos >= len(m.rows) {
		return nil
	}

	return assign(dest, m.rows[m.pos])
}

func (m *MockRows) Err() error {
	return m.err
}

func (m *MockRows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag("")
}

func (m *MockRows) Values() ([]any, error) {
	if m.pos >= len(m.rows) {
		return nil, nil
	}
	return m.rows[m.pos], nil
}

func (m *MockRows) RawValues() [][]byte {
	return nil
}

func (m *MockRows) Conn() *pgx.Conn {
	return nil
}

// assign copies values into scan destinations. A nil value zeroes the target.
func assign(dest []any, values []any) error {
	for i, val := range values {
		if i >= len(dest) {
			break
		}

		target := reflect.ValueOf(dest[i]).Elem()
		if val == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}

		v := reflect.ValueOf(val)
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("cannot scan %T into %s", val, target.Type())
		}
		target.Set(v)
	}

	return nil
}

func NewMockCommandTag(command string, rowsAffected int64) pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("%s %d", command, rowsAffected))
}

var departmentFieldDescriptions = []pgconn.FieldDescription{
	{Name: "id", DataTypeOID: 20},
	{Name: "name", DataTypeOID: 1043},
}

var employeeFieldDescriptions = []pgconn.FieldDescription{
	{Name: "id", DataTypeOID: 20},
	{Name: "name", DataTypeOID: 1043},
	{Name: "date_of_birth", DataTypeOID: 1082},
	{Name: "salary", DataTypeOID: 701},
	{Name: "department_id", DataTypeOID: 20},
}

func newTestStore(db DB) *Store {
	return NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ptr[T any](v T) *T {
	return &v
}
