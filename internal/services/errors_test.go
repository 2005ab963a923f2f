package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"urlaubsplaner-system/internal/planner"
)

func TestCapacityErrorMessage(t *testing.T) {
	err := &CapacityError{Verdict: planner.Verdict{
		IsValid:        false,
		PeakCount:      4,
		MaxAllowed:     3,
		PeakDay:        time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		PeakPercentage: 40,
		TotalEmployees: 10,
	}}

	msg := err.Error()
	assert.Contains(t, msg, "at most 3 employees may be on leave")
	assert.Contains(t, msg, "10.02.2025")
	// The percentage describes the peak load, not the policy cap, so it
	// belongs to the peak clause.
	assert.Contains(t, msg, "would have 4 (40%)")
	assert.NotContains(t, msg, "3 employees (40%)")
}

func TestErrorWrapping(t *testing.T) {
	err := fmt.Errorf("%w: employee", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))

	var capacityErr *CapacityError
	wrapped := fmt.Errorf("rejected: %w", &CapacityError{})
	assert.True(t, errors.As(wrapped, &capacityErr))
}
