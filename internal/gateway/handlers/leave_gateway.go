package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"urlaubsplaner-system/internal/services"
	leavehandler "urlaubsplaner-system/internal/services/leave/handler"
)

type LeaveHTTPHandler struct {
	leave *leavehandler.LeaveHandler
}

func NewLeaveHTTPHandler(leave *leavehandler.LeaveHandler) *LeaveHTTPHandler {
	return &LeaveHTTPHandler{
		leave: leave,
	}
}

type LeaveEntryRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required"`
	VacationType string `json:"vacation_type" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Notes        string `json:"notes"`
}

type ListLeaveEntriesQuery struct {
	EmployeeID   string `form:"employee_id"`
	VacationType string `form:"vacation_type"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Page         int    `form:"page,default=1"`
	PageSize     int    `form:"page_size,default=50"`
}

func (r LeaveEntryRequest) toParams() (leavehandler.EntryParams, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return leavehandler.EntryParams{}, fmt.Errorf("%w: start_date must be formatted as YYYY-MM-DD", services.ErrValidation)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return leavehandler.EntryParams{}, fmt.Errorf("%w: end_date must be formatted as YYYY-MM-DD", services.ErrValidation)
	}
	return leavehandler.EntryParams{
		EmployeeID:   r.EmployeeID,
		VacationType: r.VacationType,
		StartDate:    start,
		EndDate:      end,
		Notes:        r.Notes,
	}, nil
}

func (h *LeaveHTTPHandler) CreateEntry(c *gin.Context) {
	var req LeaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	params, err := req.toParams()
	if err != nil {
		writeError(c, err)
		return
	}

	entry, err := h.leave.CreateEntry(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("leave entry created successfully", leaveEntryView(*entry)))
}

func (h *LeaveHTTPHandler) GetEntry(c *gin.Context) {
	entry, err := h.leave.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("leave entry retrieved successfully", leaveEntryView(*entry)))
}

func (h *LeaveHTTPHandler) ListEntries(c *gin.Context) {
	var query ListLeaveEntriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	params := leavehandler.ListEntriesParams{
		EmployeeID:   query.EmployeeID,
		VacationType: query.VacationType,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}

	if query.StartDate != "" {
		start, err := time.Parse(dateLayout, query.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("start_date must be formatted as YYYY-MM-DD"))
			return
		}
		params.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse(dateLayout, query.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("end_date must be formatted as YYYY-MM-DD"))
			return
		}
		params.EndDate = &end
	}

	entries, total, err := h.leave.ListEntries(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successWithMetaResponse(
		"leave entries retrieved successfully",
		leaveEntryViews(entries),
		gin.H{"total": total, "page": query.Page, "page_size": query.PageSize},
	))
}

func (h *LeaveHTTPHandler) UpdateEntry(c *gin.Context) {
	var req LeaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	params, err := req.toParams()
	if err != nil {
		writeError(c, err)
		return
	}

	entry, err := h.leave.UpdateEntry(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("leave entry updated successfully", leaveEntryView(*entry)))
}

func (h *LeaveHTTPHandler) DeleteEntry(c *gin.Context) {
	if err := h.leave.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("leave entry deleted successfully", nil))
}
