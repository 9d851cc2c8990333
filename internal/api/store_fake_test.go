package api

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/adamanr/departments_service/internal/validation"
)

// fakeStore keeps rows in memory and understands the predicates the filter
// package builds.
type fakeStore struct {
	mu          sync.Mutex
	departments []entity.Department
	employees   []entity.Employee
	nextDept    int64
	nextEmp     int64
}

func date(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newSeededStore() *fakeStore {
	dept := func(id int64) *int64 { return &id }

	return &fakeStore{
		departments: []entity.Department{
			{ID: 1, Name: "Test1"},
			{ID: 2, Name: "Test2"},
			{ID: 3, Name: "Test3"},
		},
		employees: []entity.Employee{
			{ID: 1, Name: "Employee1", DateOfBirth: date("1991-01-09"), Salary: 1000, DepartmentID: dept(1)},
			{ID: 2, Name: "Employee2", DateOfBirth: date("1992-02-10"), Salary: 2000, DepartmentID: dept(1)},
			{ID: 3, Name: "Employee3", DateOfBirth: date("1993-03-11"), Salary: 3000, DepartmentID: dept(2)},
		},
		nextDept: 4,
		nextEmp:  4,
	}
}

func (s *fakeStore) ListDepartments(_ context.Context, where sq.Sqlizer) ([]entity.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entity.Department
	for _, d := range s.departments {
		if !matches(where, map[string]any{"id": d.ID, "name": d.Name}) {
			continue
		}
		for _, e := range s.employees {
			if e.DepartmentID != nil && *e.DepartmentID == d.ID {
				d.Employees = append(d.Employees, e)
			}
		}
		result = append(result, d)
	}

	return result, nil
}

func (s *fakeStore) FindDepartment(_ context.Context, id int64) (*entity.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.departmentIndex(id); i >= 0 {
		d := s.departments[i]
		return &d, nil
	}
	return nil, nil
}

func (s *fakeStore) CreateDepartment(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextDept
	s.nextDept++
	s.departments = append(s.departments, entity.Department{ID: id, Name: name})

	return id, nil
}

func (s *fakeStore) UpdateDepartment(_ context.Context, id int64, changes []validation.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.departmentIndex(id)
	if i < 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("Department %d doesn't exist", id))
	}

	for _, f := range changes {
		if f.Set && f.Name == "name" {
			s.departments[i].Name = f.Value.(string)
		}
	}

	return nil
}

func (s *fakeStore) DeleteDepartment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.employees {
		if e.DepartmentID != nil && *e.DepartmentID == id {
			return apperrors.New(apperrors.ErrIntegrityViolation, "row is still referenced")
		}
	}

	i := s.departmentIndex(id)
	if i < 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("Department %d doesn't exist", id))
	}
	s.departments = slices.Delete(s.departments, i, i+1)

	return nil
}

func (s *fakeStore) ListEmployees(_ context.Context, where sq.Sqlizer) ([]entity.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entity.Employee
	for _, e := range s.employees {
		row := map[string]any{"id": e.ID, "date_of_birth": e.DateOfBirth, "department_id": e.DepartmentID}
		if matches(where, row) {
			result = append(result, e)
		}
	}

	return result, nil
}

func (s *fakeStore) FindEmployee(_ context.Context, id int64) (*entity.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.employeeIndex(id); i >= 0 {
		e := s.employees[i]
		return &e, nil
	}
	return nil, nil
}

func (s *fakeStore) CreateEmployee(_ context.Context, employee entity.Employee) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if employee.DepartmentID != nil && s.departmentIndex(*employee.DepartmentID) < 0 {
		return 0, apperrors.New(apperrors.ErrIntegrityViolation, "department doesn't exist")
	}

	employee.ID = s.nextEmp
	s.nextEmp++
	s.employees = append(s.employees, employee)

	return employee.ID, nil
}

func (s *fakeStore) UpdateEmployee(_ context.Context, id int64, changes []validation.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.employeeIndex(id)
	if i < 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("Employee %d doesn't exist", id))
	}

	updated := s.employees[i]
	for _, f := range changes {
		if !f.Set {
			continue
		}

		switch f.Name {
		case "name":
			updated.Name = f.Value.(string)
		case "date_of_birth":
			updated.DateOfBirth = f.Value.(time.Time)
		case "salary":
			updated.Salary = f.Value.(float64)
		case "department_id":
			if f.Value == nil {
				updated.DepartmentID = nil
				continue
			}
			departmentID := f.Value.(int64)
			if s.departmentIndex(departmentID) < 0 {
				return apperrors.New(apperrors.ErrIntegrityViolation, "update references a missing row")
			}
			updated.DepartmentID = &departmentID
		}
	}
	s.employees[i] = updated

	return nil
}

func (s *fakeStore) DeleteEmployee(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.employeeIndex(id)
	if i < 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("Employee %d doesn't exist", id))
	}
	s.employees = slices.Delete(s.employees, i, i+1)

	return nil
}

func (s *fakeStore) departmentIndex(id int64) int {
	return slices.IndexFunc(s.departments, func(d entity.Department) bool { return d.ID == id })
}

func (s *fakeStore) employeeIndex(id int64) int {
	return slices.IndexFunc(s.employees, func(e entity.Employee) bool { return e.ID == id })
}

func matches(where sq.Sqlizer, row map[string]any) bool {
	switch w := where.(type) {
	case nil:
		return true
	case sq.And:
		for _, part := range w {
			if !matches(part, row) {
				return false
			}
		}
		return true
	case sq.Eq:
		for col, want := range w {
			if !equals(row[col], want) {
				return false
			}
		}
		return true
	case sq.GtOrEq:
		for col, bound := range w {
			if row[col].(time.Time).Before(bound.(time.Time)) {
				return false
			}
		}
		return true
	case sq.LtOrEq:
		for col, bound := range w {
			if row[col].(time.Time).After(bound.(time.Time)) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("unsupported predicate %T", where))
	}
}

func equals(value, want any) bool {
	if p, ok := value.(*int64); ok {
		if p == nil {
			return false
		}
		value = *p
	}

	if ids, ok := want.([]int64); ok {
		id, isID := value.(int64)
		return isID && slices.Contains(ids, id)
	}

	return value == want
}
