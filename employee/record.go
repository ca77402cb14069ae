package employee

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// ErrNotFound reports that no employee carries the requested id.
var ErrNotFound = errors.New("employee not found")

type (
	// Record is one employee as returned by the upstream API.
	Record struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Salary int    `json:"salary"`
		Age    int    `json:"age"`
	}

	// Envelope is the upstream response wrapper. Only Data is consumed.
	Envelope struct {
		Status  string   `json:"status"`
		Message string   `json:"message"`
		Data    []Record `json:"data"`
	}

	// flexInt decodes from a JSON number or a numeric string.
	flexInt int

	// flexString decodes from a JSON string or number.
	flexString string

	wireRecord struct {
		ID             flexString `json:"id"`
		EmployeeName   *string    `json:"employee_name"`
		Name           *string    `json:"name"`
		EmployeeSalary *flexInt   `json:"employee_salary"`
		Salary         *flexInt   `json:"salary"`
		EmployeeAge    *flexInt   `json:"employee_age"`
		Age            *flexInt   `json:"age"`
	}
)

// IsZero reports whether r is the zero record.
func (r Record) IsZero() bool { return r == Record{} }

// UnmarshalJSON accepts both the upstream field names
// (employee_name, employee_salary, employee_age) and the short ones.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = Record{
		ID:     string(w.ID),
		Name:   firstString(w.EmployeeName, w.Name),
		Salary: firstInt(w.EmployeeSalary, w.Salary),
		Age:    firstInt(w.EmployeeAge, w.Age),
	}

	return nil
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		if s == "" {
			return nil
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("numeric string %q: %w", s, err)
		}

		*f = flexInt(n)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	v, err := n.Int64()
	if err != nil {
		fv, ferr := n.Float64()
		if ferr != nil {
			return fmt.Errorf("number %s: %w", n, err)
		}

		v = int64(fv)
	}

	*f = flexInt(v)

	return nil
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*f = flexString(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*f = flexString(n.String())

	return nil
}

func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}

	return ""
}

func firstInt(vals ...*flexInt) int {
	for _, v := range vals {
		if v != nil {
			return int(*v)
		}
	}

	return 0
}
