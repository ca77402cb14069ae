package employee

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultTopN is the size of the highest-earners ranking.
const DefaultTopN = 10

// FilterByNameSubstring returns the records whose name contains needle,
// in input order. Matching is case-sensitive; an empty needle matches
// every record.
func FilterByNameSubstring(list []Record, needle string) []Record {
	out := make([]Record, 0, len(list))

	for _, r := range list {
		if strings.Contains(r.Name, needle) {
			out = append(out, r)
		}
	}

	return out
}

// MaxSalary returns the highest salary in list, or 0 when list is empty.
func MaxSalary(list []Record) int {
	if len(list) == 0 {
		return 0
	}

	return slices.MaxFunc(list, func(a, b Record) int {
		return cmp.Compare(a.Salary, b.Salary)
	}).Salary
}

// TopNBySalaryDesc returns the names of at most n records ordered by
// salary, highest first. Equal salaries keep their input order.
func TopNBySalaryDesc(list []Record, n int) []string {
	if n <= 0 || len(list) == 0 {
		return []string{}
	}

	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return cmp.Compare(b.Salary, a.Salary)
	})

	names := make([]string, 0, min(n, len(sorted)))
	for _, r := range sorted[:min(n, len(sorted))] {
		names = append(names, r.Name)
	}

	return names
}

// FindByID returns the first record whose id equals id exactly, or
// ErrNotFound.
func FindByID(list []Record, id string) (Record, error) {
	idx := slices.IndexFunc(list, func(r Record) bool { return r.ID == id })
	if idx < 0 {
		return Record{}, ErrNotFound
	}

	return list[idx], nil
}
