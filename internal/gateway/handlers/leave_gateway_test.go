package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlaubsplaner-system/internal/services"
)

func TestLeaveEntryRequestToParams(t *testing.T) {
	req := LeaveEntryRequest{
		EmployeeID:   "e1",
		VacationType: "VACATION",
		StartDate:    "2025-01-13",
		EndDate:      "2025-01-17",
		Notes:        "Skiurlaub",
	}

	params, err := req.toParams()
	require.NoError(t, err)

	assert.Equal(t, "e1", params.EmployeeID)
	assert.Equal(t, "VACATION", params.VacationType)
	assert.Equal(t, 2025, params.StartDate.Year())
	assert.Equal(t, 13, params.StartDate.Day())
	assert.Equal(t, 17, params.EndDate.Day())
	assert.Equal(t, "Skiurlaub", params.Notes)
}

func TestLeaveEntryRequestRejectsBadDates(t *testing.T) {
	tests := []struct {
		name string
		req  LeaveEntryRequest
	}{
		{"bad start date", LeaveEntryRequest{StartDate: "13.01.2025", EndDate: "2025-01-17"}},
		{"bad end date", LeaveEntryRequest{StartDate: "2025-01-13", EndDate: "tomorrow"}},
		{"empty dates", LeaveEntryRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.toParams()
			assert.True(t, errors.Is(err, services.ErrValidation))
		})
	}
}
