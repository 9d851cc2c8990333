package entity

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/adamanr/departments_service/internal/validation"
)

// DepartmentForm is the JSON body of department create and update requests.
type DepartmentForm struct {
	Name null.String `json:"name" validate:"omitempty,max=255"`

	sent map[string]struct{}
}

func (f *DepartmentForm) UnmarshalJSON(data []byte) error {
	type plain DepartmentForm

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	sent, err := sentKeys(data)
	if err != nil {
		return err
	}

	*f = DepartmentForm(p)
	f.sent = sent

	return nil
}

// Fields lists the form keys in declaration order. Empty strings carry no value.
func (f DepartmentForm) Fields() []validation.Field {
	return []validation.Field{
		{Name: "name", Value: f.Name.String, Set: f.Name.Valid && f.Name.String != ""},
	}
}

// EmployeeForm is the JSON body of employee create and update requests.
type EmployeeForm struct {
	Name         null.String  `json:"name" validate:"omitempty,max=255"`
	DateOfBirth  null.String  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Salary       null.Float64 `json:"salary"`
	DepartmentID null.Int64   `json:"department_id" validate:"omitempty,gt=0"`

	sent map[string]struct{}
}

func (f *EmployeeForm) UnmarshalJSON(data []byte) error {
	type plain EmployeeForm

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	sent, err := sentKeys(data)
	if err != nil {
		return err
	}

	*f = EmployeeForm(p)
	f.sent = sent

	return nil
}

// Fields lists the keys that carry a value, as needed to create an employee.
func (f EmployeeForm) Fields() []validation.Field {
	return []validation.Field{
		{Name: "name", Value: f.Name.String, Set: f.Name.Valid && f.Name.String != ""},
		{Name: "date_of_birth", Value: dateValue(f.DateOfBirth.String), Set: f.DateOfBirth.Valid && f.DateOfBirth.String != ""},
		{Name: "salary", Value: f.Salary.Float64, Set: f.Salary.Valid},
		{Name: "department_id", Value: f.DepartmentID.Int64, Set: f.DepartmentID.Valid},
	}
}

// Changes is like Fields, except that an explicit null department_id is a
// change that detaches the employee from its department.
func (f EmployeeForm) Changes() []validation.Field {
	fields := f.Fields()

	if !f.DepartmentID.Valid && f.has("department_id") {
		fields[3] = validation.Field{Name: "department_id", Value: nil, Set: true}
	}

	return fields
}

func (f EmployeeForm) has(key string) bool {
	_, ok := f.sent[key]
	return ok
}

func dateValue(raw string) any {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t
	}
	return raw
}

func sentKeys(data []byte) (map[string]struct{}, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(raw))
	for k := range raw {
		keys[k] = struct{}{}
	}

	return keys, nil
}
