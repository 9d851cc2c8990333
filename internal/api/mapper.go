package api

import (
	"github.com/adamanr/departments_service/internal/entity"
)

type EmployeeResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	DateOfBirth  string  `json:"date_of_birth"`
	Salary       float64 `json:"salary"`
	DepartmentID *int64  `json:"department_id"`
}

type DepartmentResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Employees []EmployeeResponse `json:"employees"`
}

func EmployeeToResponse(e entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		DateOfBirth:  e.DateOfBirth.Format(entity.DateLayout),
		Salary:       e.Salary,
		DepartmentID: e.DepartmentID,
	}
}

// EmployeesToResponse never returns nil, so empty lists render as [].
func EmployeesToResponse(employees []entity.Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, EmployeeToResponse(e))
	}

	return resp
}

func DepartmentToResponse(d entity.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		Employees: EmployeesToResponse(d.Employees),
	}
}

func DepartmentsToResponse(departments []entity.Department) []DepartmentResponse {
	resp := make([]DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, DepartmentToResponse(d))
	}

	return resp
}
