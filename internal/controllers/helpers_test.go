package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/adamanr/departments_service/internal/validation"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore represents a mock entity store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListDepartments(ctx context.Context, where sq.Sqlizer) ([]entity.Department, error) {
	args := m.Called(ctx, where)
	departments, _ := args.Get(0).([]entity.Department)
	return departments, args.Error(1)
}

func (m *MockStore) FindDepartment(ctx context.Context, id int64) (*entity.Department, error) {
	args := m.Called(ctx, id)
	department, _ := args.Get(0).(*entity.Department)
	return department, args.Error(1)
}

func (m *MockStore) CreateDepartment(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UpdateDepartment(ctx context.Context, id int64, changes []validation.Field) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockStore) DeleteDepartment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ListEmployees(ctx context.Context, where sq.Sqlizer) ([]entity.Employee, error) {
	args := m.Called(ctx, where)
	employees, _ := args.Get(0).([]entity.Employee)
	return employees, args.Error(1)
}

func (m *MockStore) FindEmployee(ctx context.Context, id int64) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	employee, _ := args.Get(0).(*entity.Employee)
	return employee, args.Error(1)
}

func (m *MockStore) CreateEmployee(ctx context.Context, employee entity.Employee) (int64, error) {
	args := m.Called(ctx, employee)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UpdateEmployee(ctx context.Context, id int64, changes []validation.Field) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockStore) DeleteEmployee(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func CreateTestDependencies(store Store) *Dependens {
	return &Dependens{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func departmentForm(t *testing.T, body string) entity.DepartmentForm {
	t.Helper()

	var form entity.DepartmentForm
	require.NoError(t, json.Unmarshal([]byte(body), &form))

	return form
}

func employeeForm(t *testing.T, body string) entity.EmployeeForm {
	t.Helper()

	var form entity.EmployeeForm
	require.NoError(t, json.Unmarshal([]byte(body), &form))

	return form
}

// changesDescribedAs matches update changes by their rendered form.
func changesDescribedAs(expected string) any {
	return mock.MatchedBy(func(changes []validation.Field) bool {
		return describe(changes) == expected
	})
}

func Int64Ptr(v int64) *int64 {
	return &v
}
