package orchestrator

import (
	"context"
	"fmt"

	"github.com/byte4ever/employeegw/employee"
	"github.com/byte4ever/employeegw/resilience"
)

// ListAll returns every employee, or an empty list once retries are
// exhausted.
func (o *Orchestrator) ListAll(ctx context.Context) ([]employee.Record, error) {
	return resilience.Execute(ctx, o.listAll, struct{}{},
		func(ctx context.Context, _ struct{}) ([]employee.Record, error) {
			return o.gw.FetchAll(ctx)
		},
		resilience.Fallback[struct{}, []employee.Record]{
			Exhausted: func(struct{}, error) []employee.Record { return []employee.Record{} },
		},
	)
}

// SearchByName returns the employees whose name contains q
// (case-sensitive), or an empty list once retries are exhausted.
func (o *Orchestrator) SearchByName(ctx context.Context, q string) ([]employee.Record, error) {
	return resilience.Execute(ctx, o.searchByName, q,
		func(ctx context.Context, q string) ([]employee.Record, error) {
			list, err := o.gw.FetchAll(ctx)
			if err != nil {
				return nil, err
			}

			return employee.FilterByNameSubstring(list, q), nil
		},
		resilience.Fallback[string, []employee.Record]{
			Exhausted: func(string, error) []employee.Record { return []employee.Record{} },
		},
	)
}

// GetByID returns one employee. The zero record comes back both when the
// employee does not exist and when retries are exhausted.
func (o *Orchestrator) GetByID(ctx context.Context, id string) (employee.Record, error) {
	zero := func(string, error) employee.Record { return employee.Record{} }

	return resilience.Execute(ctx, o.getByID, id,
		func(ctx context.Context, id string) (employee.Record, error) {
			return o.gw.FetchByID(ctx, id)
		},
		resilience.Fallback[string, employee.Record]{
			Exhausted: zero,
			Terminal:  zero,
		},
	)
}

// HighestSalary returns the highest salary, or 0 once retries are
// exhausted.
func (o *Orchestrator) HighestSalary(ctx context.Context) (int, error) {
	return resilience.Execute(ctx, o.highestSalary, struct{}{},
		func(ctx context.Context, _ struct{}) (int, error) {
			list, err := o.gw.FetchAll(ctx)
			if err != nil {
				return 0, err
			}

			return employee.MaxSalary(list), nil
		},
		resilience.Fallback[struct{}, int]{
			Exhausted: func(struct{}, error) int { return 0 },
		},
	)
}

// TopTenNames returns the names of the ten best paid employees, highest
// first, or an empty list once retries are exhausted.
func (o *Orchestrator) TopTenNames(ctx context.Context) ([]string, error) {
	return resilience.Execute(ctx, o.topTenNames, employee.DefaultTopN,
		func(ctx context.Context, n int) ([]string, error) {
			list, err := o.gw.FetchAll(ctx)
			if err != nil {
				return nil, err
			}

			return employee.TopNBySalaryDesc(list, n), nil
		},
		resilience.Fallback[int, []string]{
			Exhausted: func(int, error) []string { return []string{} },
		},
	)
}

// Create forwards fields unchanged to the upstream and returns the
// created employee, or nil once retries are exhausted.
func (o *Orchestrator) Create(ctx context.Context, fields map[string]any) (*employee.Record, error) {
	return resilience.Execute(ctx, o.create, fields,
		func(ctx context.Context, fields map[string]any) (*employee.Record, error) {
			rec, err := o.gw.Create(ctx, fields)
			if err != nil {
				return nil, err
			}

			return &rec, nil
		},
		resilience.Fallback[map[string]any, *employee.Record]{
			Exhausted: func(map[string]any, error) *employee.Record { return nil },
		},
	)
}

// DeleteByID resolves the employee name from a fresh full list, deletes
// the employee and returns its name. An unknown id yields an error
// wrapping [employee.ErrNotFound] without calling the upstream delete.
// Once retries are exhausted the name is replaced by [DeleteFailed].
func (o *Orchestrator) DeleteByID(ctx context.Context, id string) (string, error) {
	return resilience.Execute(ctx, o.deleteByID, id,
		func(ctx context.Context, id string) (string, error) {
			list, err := o.gw.FetchAll(ctx)
			if err != nil {
				return "", err
			}

			rec, err := employee.FindByID(list, id)
			if err != nil {
				return "", resilience.Permanent(fmt.Errorf("delete %q: %w", id, err))
			}

			if err := o.gw.DeleteByID(ctx, id); err != nil {
				return "", err
			}

			return rec.Name, nil
		},
		resilience.Fallback[string, string]{
			Exhausted: func(string, error) string { return DeleteFailed },
		},
	)
}
