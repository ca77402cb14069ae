// Package employee holds the employee record model and the pure
// aggregation pipeline applied to snapshots fetched from the upstream
// API: name search, highest salary, top-N ranking and id lookup.
//
// Every function treats its input as read-only and returns fresh values.
package employee
