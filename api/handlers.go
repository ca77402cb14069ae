package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byte4ever/employeegw/employee"
	"github.com/byte4ever/employeegw/logger"
	"github.com/byte4ever/employeegw/orchestrator"
)

// Service is the set of employee operations served over HTTP.
type Service interface {
	ListAll(ctx context.Context) ([]employee.Record, error)
	SearchByName(ctx context.Context, q string) ([]employee.Record, error)
	GetByID(ctx context.Context, id string) (employee.Record, error)
	HighestSalary(ctx context.Context) (int, error)
	TopTenNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, fields map[string]any) (*employee.Record, error)
	DeleteByID(ctx context.Context, id string) (string, error)
}

// EmployeeHandler serves the /api/v1 employee routes.
type EmployeeHandler struct {
	svc Service
	log *logger.Logger
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(svc Service, log *logger.Logger) *EmployeeHandler {
	if log == nil {
		log = logger.Nop()
	}

	return &EmployeeHandler{svc: svc, log: log}
}

// ListAll handles GET /employees.
func (h *EmployeeHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}

	RespondOK(c, list)
}

// Search handles GET /search?searchString=.
func (h *EmployeeHandler) Search(c *gin.Context) {
	list, err := h.svc.SearchByName(c.Request.Context(), c.Query("searchString"))
	if err != nil {
		h.internal(c, err)
		return
	}

	RespondOK(c, list)
}

// GetByID handles GET /employees/:id.
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.internal(c, err)
		return
	}

	if rec.IsZero() {
		RespondError(c, http.StatusNotFound, CodeNotFound,
			fmt.Sprintf("employee with id %s not found", id))
		return
	}

	RespondOK(c, rec)
}

// HighestSalary handles GET /highestSalary.
func (h *EmployeeHandler) HighestSalary(c *gin.Context) {
	salary, err := h.svc.HighestSalary(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}

	if salary == 0 {
		RespondError(c, http.StatusBadRequest, CodeServiceDown, MsgServiceDown)
		return
	}

	RespondOK(c, salary)
}

// TopTenNames handles GET /topTenHighestEarningEmployeeNames.
func (h *EmployeeHandler) TopTenNames(c *gin.Context) {
	names, err := h.svc.TopTenNames(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}

	if len(names) == 0 {
		RespondError(c, http.StatusBadRequest, CodeServiceDown, MsgServiceDown)
		return
	}

	RespondOK(c, names)
}

// Create handles POST /employees. The JSON object is forwarded to the
// upstream unchanged.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "malformed employee body: "+err.Error())
		return
	}

	if fields == nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "employee body is required")
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), fields)
	if err != nil {
		h.internal(c, err)
		return
	}

	if rec == nil {
		RespondError(c, http.StatusBadRequest, CodeServiceDown, MsgServiceDown)
		return
	}

	RespondOK(c, rec)
}

// DeleteByID handles DELETE /employees/:id.
func (h *EmployeeHandler) DeleteByID(c *gin.Context) {
	id := c.Param("id")

	name, err := h.svc.DeleteByID(c.Request.Context(), id)

	switch {
	case errors.Is(err, employee.ErrNotFound):
		RespondError(c, http.StatusNotFound, CodeNotFound,
			fmt.Sprintf("employee with id %s not found", id))
	case err != nil:
		h.internal(c, err)
	case name == orchestrator.DeleteFailed:
		RespondError(c, http.StatusBadRequest, CodeDeleteFailed, orchestrator.DeleteFailed)
	default:
		c.String(http.StatusOK, "Employee: %s with id: %s deleted successfully", name, id)
	}
}

func (h *EmployeeHandler) internal(c *gin.Context, err error) {
	h.log.Error("unexpected operation error", "path", c.FullPath(), "error", err)
	RespondError(c, http.StatusInternalServerError, CodeInternal, "")
}
