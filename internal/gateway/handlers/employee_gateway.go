package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"urlaubsplaner-system/internal/database"
	employeehandler "urlaubsplaner-system/internal/services/employee/handler"
)

type EmployeeHTTPHandler struct {
	employee *employeehandler.EmployeeHandler
}

func NewEmployeeHTTPHandler(employee *employeehandler.EmployeeHandler) *EmployeeHTTPHandler {
	return &EmployeeHTTPHandler{
		employee: employee,
	}
}

type CreateEmployeeRequest struct {
	Name              string             `json:"name" binding:"required"`
	Email             string             `json:"email" binding:"required,email"`
	Role              string             `json:"role"`
	VacationDaysTotal decimal.Decimal    `json:"vacation_days_total"`
	Skills            database.SkillList `json:"skills"`
}

type UpdateEmployeeRequest struct {
	Name              *string             `json:"name,omitempty"`
	Email             *string             `json:"email,omitempty"`
	Role              *string             `json:"role,omitempty"`
	VacationDaysTotal *decimal.Decimal    `json:"vacation_days_total,omitempty"`
	Skills            *database.SkillList `json:"skills,omitempty"`
}

func (h *EmployeeHTTPHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	employee, err := h.employee.CreateEmployee(c.Request.Context(), employeehandler.CreateEmployeeParams{
		Name:              req.Name,
		Email:             req.Email,
		Role:              req.Role,
		VacationDaysTotal: req.VacationDaysTotal,
		Skills:            req.Skills,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("employee created successfully", employeeView(*employee)))
}

func (h *EmployeeHTTPHandler) GetEmployee(c *gin.Context) {
	employee, err := h.employee.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("employee retrieved successfully", employeeView(*employee)))
}

type ListEmployeesQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=50"`
}

func (h *EmployeeHTTPHandler) ListEmployees(c *gin.Context) {
	var query ListEmployeesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	employees, total, err := h.employee.ListEmployees(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successWithMetaResponse(
		"employees retrieved successfully",
		employeeViews(employees),
		gin.H{"total": total, "page": query.Page, "page_size": query.PageSize},
	))
}

func (h *EmployeeHTTPHandler) UpdateEmployee(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	employee, err := h.employee.UpdateEmployee(c.Request.Context(), c.Param("id"), employeehandler.UpdateEmployeeParams{
		Name:              req.Name,
		Email:             req.Email,
		Role:              req.Role,
		VacationDaysTotal: req.VacationDaysTotal,
		Skills:            req.Skills,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("employee updated successfully", employeeView(*employee)))
}

func (h *EmployeeHTTPHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employee.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("employee and leave entries deleted successfully", nil))
}

// --- Settings ---

func (h *EmployeeHTTPHandler) GetSettings(c *gin.Context) {
	settings, err := h.employee.GetPolicySettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("settings retrieved successfully", settings))
}

// --- Accrual ---

func (h *EmployeeHTTPHandler) RunAccrual(c *gin.Context) {
	result, err := h.employee.ApplyMonthlyAccrual(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("accrual job finished", result))
}
