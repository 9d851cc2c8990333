package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/adamanr/departments_service/internal/filter"
	"github.com/adamanr/departments_service/internal/validation"
)

const employeeKind = "Employee"

type EmployeeController struct {
	deps *Dependens
}

func NewEmployeeController(deps *Dependens) *EmployeeController {
	return &EmployeeController{
		deps: deps,
	}
}

func (c *EmployeeController) GetEmployees(ctx context.Context, pathID string, params entity.GetEmployeesParams) ([]entity.Employee, error) {
	if err := validation.NoPathIDOnCollectionOps(pathID); err != nil {
		return nil, reject(c.deps.Logger, "list employees", err)
	}

	where, err := filter.Employees(params)
	if err != nil {
		return nil, reject(c.deps.Logger, "list employees", err)
	}

	employees, err := c.deps.Store.ListEmployees(ctx, where)
	if err != nil {
		c.deps.Logger.Error("Error getting employees", slog.String("error", err.Error()))
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}

// CreateEmployee requires every field of the form. Nothing is written when
// any check fails.
func (c *EmployeeController) CreateEmployee(ctx context.Context, pathID string, form entity.EmployeeForm) (string, error) {
	if err := validation.NoPathIDOnCollectionOps(pathID); err != nil {
		return "", reject(c.deps.Logger, "create employee", err)
	}

	fields := form.Fields()
	if err := validation.AllRequiredFilled(fields...); err != nil {
		return "", reject(c.deps.Logger, "create employee", err)
	}

	if err := validation.Struct(form); err != nil {
		return "", reject(c.deps.Logger, "create employee", err)
	}

	if err := validation.IsPositive(validation.Pick(fields, "salary")...); err != nil {
		return "", reject(c.deps.Logger, "create employee", err)
	}

	birthday, err := time.Parse(entity.DateLayout, form.DateOfBirth.String)
	if err != nil {
		return "", reject(c.deps.Logger, "create employee",
			apperrors.Wrap(apperrors.ErrBadRequest, "Please provide date_of_birth in 2006-01-02 format", err))
	}

	departmentID := form.DepartmentID.Int64
	id, err := c.deps.Store.CreateEmployee(ctx, entity.Employee{
		Name:         form.Name.String,
		DateOfBirth:  birthday,
		Salary:       form.Salary.Float64,
		DepartmentID: &departmentID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrIntegrityViolation) {
			return "", reject(c.deps.Logger, "create employee", missingDepartment(departmentID, err))
		}

		c.deps.Logger.Error("Error creating employee", slog.String("error", err.Error()))
		return "", fmt.Errorf("create employee: %w", err)
	}

	c.deps.Logger.Info("Employee created", slog.Int64("id", id))
	return fmt.Sprintf("New employee %s with id %d was added", form.Name.String, id), nil
}

// UpdateEmployee changes only the fields the form carries. An explicit null
// department_id detaches the employee.
func (c *EmployeeController) UpdateEmployee(ctx context.Context, pathID string, form entity.EmployeeForm) (string, error) {
	if err := validation.IDRequired(pathID, "updating"); err != nil {
		return "", reject(c.deps.Logger, "update employee", err)
	}

	changes := form.Changes()
	if err := validation.AtLeastOneFilled(changes...); err != nil {
		return "", reject(c.deps.Logger, "update employee", err)
	}

	employee, err := c.find(ctx, pathID)
	if err != nil {
		return "", err
	}

	if err = validation.Struct(form); err != nil {
		return "", reject(c.deps.Logger, "update employee", err)
	}

	if err = validation.IsPositive(validation.Pick(changes, "salary")...); err != nil {
		return "", reject(c.deps.Logger, "update employee", err)
	}

	if err = c.deps.Store.UpdateEmployee(ctx, employee.ID, changes); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrIntegrityViolation):
			return "", reject(c.deps.Logger, "update employee", missingDepartment(form.DepartmentID.Int64, err))
		case errors.Is(err, apperrors.ErrNotFound):
			return "", reject(c.deps.Logger, "update employee", err)
		}

		c.deps.Logger.Error("Error updating employee", slog.Int64("id", employee.ID), slog.String("error", err.Error()))
		return "", fmt.Errorf("update employee: %w", err)
	}

	return fmt.Sprintf("Employee %d was updated with data %s", employee.ID, describe(changes)), nil
}

func (c *EmployeeController) DeleteEmployee(ctx context.Context, pathID string) (string, error) {
	if err := validation.IDRequired(pathID, "deleting"); err != nil {
		return "", reject(c.deps.Logger, "delete employee", err)
	}

	employee, err := c.find(ctx, pathID)
	if err != nil {
		return "", err
	}

	if err = c.deps.Store.DeleteEmployee(ctx, employee.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", reject(c.deps.Logger, "delete employee", err)
		}

		c.deps.Logger.Error("Error deleting employee", slog.Int64("id", employee.ID), slog.String("error", err.Error()))
		return "", fmt.Errorf("delete employee: %w", err)
	}

	c.deps.Logger.Info("Employee deleted", slog.Int64("id", employee.ID))
	return fmt.Sprintf("Employee %d was successfully deleted", employee.ID), nil
}

func (c *EmployeeController) find(ctx context.Context, pathID string) (*entity.Employee, error) {
	var employee *entity.Employee

	if id, ok := parseID(pathID); ok {
		var err error
		if employee, err = c.deps.Store.FindEmployee(ctx, id); err != nil {
			c.deps.Logger.Error("Error getting employee", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, fmt.Errorf("find employee: %w", err)
		}
	}

	if err := validation.Exists(employee, employeeKind, pathID); err != nil {
		return nil, reject(c.deps.Logger, "find employee", err)
	}

	return employee, nil
}

func missingDepartment(id int64, err error) error {
	return apperrors.Wrap(apperrors.ErrNotFound, fmt.Sprintf("%s %d doesn't exist", departmentKind, id), err)
}
