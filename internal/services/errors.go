package services

import (
	"errors"
	"fmt"

	"urlaubsplaner-system/internal/planner"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// CapacityError reports a rejected admission check. It is an expected,
// user-actionable outcome, not a system fault: the caller picks different
// dates. The message carries everything the user needs for that.
type CapacityError struct {
	Verdict planner.Verdict
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"too many concurrent vacations: at most %d employees may be on leave at the same time, peak day %s would have %d (%d%%)",
		e.Verdict.MaxAllowed,
		e.Verdict.PeakDay.Format("02.01.2006"),
		e.Verdict.PeakCount,
		e.Verdict.PeakPercentage,
	)
}
