package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/adamanr/departments_service/internal/filter"
	"github.com/adamanr/departments_service/internal/validation"
)

const departmentKind = "Department"

type DepartmentController struct {
	deps *Dependens
}

func NewDepartmentController(deps *Dependens) *DepartmentController {
	return &DepartmentController{
		deps: deps,
	}
}

// GetDepartments lists the departments matching params with their employees.
// pathID is the id segment of the request path and must be empty.
func (c *DepartmentController) GetDepartments(ctx context.Context, pathID string, params entity.GetDepartmentsParams) ([]entity.Department, error) {
	if err := validation.NoPathIDOnCollectionOps(pathID); err != nil {
		return nil, reject(c.deps.Logger, "list departments", err)
	}

	departments, err := c.deps.Store.ListDepartments(ctx, filter.Departments(params))
	if err != nil {
		c.deps.Logger.Error("Error getting departments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("list departments: %w", err)
	}

	return departments, nil
}

func (c *DepartmentController) CreateDepartment(ctx context.Context, pathID string, form entity.DepartmentForm) (string, error) {
	if err := validation.NoPathIDOnCollectionOps(pathID); err != nil {
		return "", reject(c.deps.Logger, "create department", err)
	}

	if err := validation.AllRequiredFilled(form.Fields()...); err != nil {
		return "", reject(c.deps.Logger, "create department", err)
	}

	if err := validation.Struct(form); err != nil {
		return "", reject(c.deps.Logger, "create department", err)
	}

	id, err := c.deps.Store.CreateDepartment(ctx, form.Name.String)
	if err != nil {
		c.deps.Logger.Error("Error creating department", slog.String("error", err.Error()))
		return "", fmt.Errorf("create department: %w", err)
	}

	c.deps.Logger.Info("Department created", slog.Int64("id", id))
	return fmt.Sprintf("New department %s with id %d was added", form.Name.String, id), nil
}

// UpdateDepartment changes only the fields the form carries.
func (c *DepartmentController) UpdateDepartment(ctx context.Context, pathID string, form entity.DepartmentForm) (string, error) {
	if err := validation.IDRequired(pathID, "updating"); err != nil {
		return "", reject(c.deps.Logger, "update department", err)
	}

	changes := form.Fields()
	if err := validation.AtLeastOneFilled(changes...); err != nil {
		return "", reject(c.deps.Logger, "update department", err)
	}

	department, err := c.find(ctx, pathID)
	if err != nil {
		return "", err
	}

	if err = validation.Struct(form); err != nil {
		return "", reject(c.deps.Logger, "update department", err)
	}

	if err = c.deps.Store.UpdateDepartment(ctx, department.ID, changes); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", reject(c.deps.Logger, "update department", err)
		}

		c.deps.Logger.Error("Error updating department", slog.Int64("id", department.ID), slog.String("error", err.Error()))
		return "", fmt.Errorf("update department: %w", err)
	}

	return fmt.Sprintf("Department %d was updated with data %s", department.ID, describe(changes)), nil
}

// DeleteDepartment refuses to delete a department that still has employees.
func (c *DepartmentController) DeleteDepartment(ctx context.Context, pathID string) (string, error) {
	if err := validation.IDRequired(pathID, "deleting"); err != nil {
		return "", reject(c.deps.Logger, "delete department", err)
	}

	department, err := c.find(ctx, pathID)
	if err != nil {
		return "", err
	}

	if err = c.deps.Store.DeleteDepartment(ctx, department.ID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrIntegrityViolation):
			c.deps.Logger.Warn("Department still has employees", slog.Int64("id", department.ID))
			return "", apperrors.Wrap(apperrors.ErrIntegrityViolation,
				"Department wasn't deleted. Please delete employees from this department first", err)
		case errors.Is(err, apperrors.ErrNotFound):
			return "", reject(c.deps.Logger, "delete department", err)
		}

		c.deps.Logger.Error("Error deleting department", slog.Int64("id", department.ID), slog.String("error", err.Error()))
		return "", fmt.Errorf("delete department: %w", err)
	}

	c.deps.Logger.Info("Department deleted", slog.Int64("id", department.ID))
	return fmt.Sprintf("Department %d was successfully deleted", department.ID), nil
}

func (c *DepartmentController) find(ctx context.Context, pathID string) (*entity.Department, error) {
	var department *entity.Department

	if id, ok := parseID(pathID); ok {
		var err error
		if department, err = c.deps.Store.FindDepartment(ctx, id); err != nil {
			c.deps.Logger.Error("Error getting department", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, fmt.Errorf("find department: %w", err)
		}
	}

	if err := validation.Exists(department, departmentKind, pathID); err != nil {
		return nil, reject(c.deps.Logger, "find department", err)
	}

	return department, nil
}
