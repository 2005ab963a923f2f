package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"urlaubsplaner-system/internal/database"
	"urlaubsplaner-system/internal/services"
)

const dateLayout = "2006-01-02"

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

func successWithMetaResponse(message string, data interface{}, meta interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

// writeError maps service errors onto HTTP statuses. Storage failures are
// logged and surfaced generically so no driver detail leaks out.
func writeError(c *gin.Context, err error) {
	var capacityErr *services.CapacityError

	switch {
	case errors.As(err, &capacityErr):
		c.JSON(http.StatusBadRequest, errorResponse(capacityErr.Error()))
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	default:
		logrus.Errorf("Unhandled service error: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
	}
}

// --- JSON Views ---

type EmployeeView struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	Email                 string             `json:"email"`
	Role                  string             `json:"role"`
	VacationDaysTotal     decimal.Decimal    `json:"vacation_days_total"`
	VacationDaysUsed      decimal.Decimal    `json:"vacation_days_used"`
	VacationDaysRemaining decimal.Decimal    `json:"vacation_days_remaining"`
	SickDaysUsed          decimal.Decimal    `json:"sick_days_used"`
	SpecialDaysUsed       decimal.Decimal    `json:"special_days_used"`
	Skills                database.SkillList `json:"skills"`
	CreatedDate           *time.Time         `json:"created_date,omitempty"`
}

func employeeView(e database.Employee) EmployeeView {
	skills := e.Skills
	if skills == nil {
		skills = database.SkillList{}
	}
	return EmployeeView{
		ID:                    e.ID,
		Name:                  e.Name,
		Email:                 e.Email,
		Role:                  e.Role,
		VacationDaysTotal:     e.VacationDaysTotal,
		VacationDaysUsed:      e.VacationDaysUsed,
		VacationDaysRemaining: e.VacationDaysTotal.Sub(e.VacationDaysUsed),
		SickDaysUsed:          e.SickDaysUsed,
		SpecialDaysUsed:       e.SpecialDaysUsed,
		Skills:                skills,
		CreatedDate:           e.CreatedAt,
	}
}

func employeeViews(employees []database.Employee) []EmployeeView {
	views := make([]EmployeeView, len(employees))
	for i, e := range employees {
		views[i] = employeeView(e)
	}
	return views
}

type LeaveEntryView struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	VacationType string          `json:"vacation_type"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	DaysCount    decimal.Decimal `json:"days_count"`
	Notes        string          `json:"notes"`
	CreatedDate  *time.Time      `json:"created_date,omitempty"`
}

func leaveEntryView(e database.LeaveEntry) LeaveEntryView {
	return LeaveEntryView{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		VacationType: e.VacationType,
		StartDate:    e.StartDate.Format(dateLayout),
		EndDate:      e.EndDate.Format(dateLayout),
		DaysCount:    e.DaysCount,
		Notes:        e.Notes,
		CreatedDate:  e.CreatedAt,
	}
}

func leaveEntryViews(entries []database.LeaveEntry) []LeaveEntryView {
	views := make([]LeaveEntryView, len(entries))
	for i, e := range entries {
		views[i] = leaveEntryView(e)
	}
	return views
}
