package entity

import (
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type Employee struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	DateOfBirth  time.Time `db:"date_of_birth"`
	Salary       float64   `db:"salary"`
	DepartmentID *int64    `db:"department_id"`
}

// GetEmployeesParams are the optional filters of an employee listing.
// Birth date bounds are raw query values in DateLayout.
type GetEmployeesParams struct {
	ID               []int64
	DateOfBirthStart *string
	DateOfBirthEnd   *string
}
