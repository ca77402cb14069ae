package upstream

import (
	"net/http"
	"net/url"
	"strings"
)

type (
	operation int

	route struct {
		method string
		path   string
		// notFoundOn404 turns a 404 into ErrNotFound instead of
		// ErrUnavailable.
		notFoundOn404 bool
	}
)

const (
	opFetchAll operation = iota
	opFetchByID
	opCreate
	opDeleteByID
)

var routes = map[operation]route{
	opFetchAll:   {method: http.MethodGet, path: "/employees"},
	opFetchByID:  {method: http.MethodGet, path: "/employees/{id}", notFoundOn404: true},
	opCreate:     {method: http.MethodPost, path: "/create"},
	opDeleteByID: {method: http.MethodDelete, path: "/delete/{id}"},
}

func (op operation) String() string {
	switch op {
	case opFetchAll:
		return "fetch_all"
	case opFetchByID:
		return "fetch_by_id"
	case opCreate:
		return "create"
	case opDeleteByID:
		return "delete_by_id"
	default:
		return "unknown"
	}
}

// url joins base and the route path, escaping id as one path segment.
func (r route) url(base, id string) string {
	return strings.TrimRight(base, "/") +
		strings.ReplaceAll(r.path, "{id}", url.PathEscape(id))
}
