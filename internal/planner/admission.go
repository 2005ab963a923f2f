package planner

import (
	"math"
	"time"
)

// Verdict is the outcome of an admission check. PeakDay is the zero time when
// the proposed range contains no business day.
type Verdict struct {
	IsValid        bool
	PeakCount      int
	MaxAllowed     int
	PeakDay        time.Time
	PeakPercentage int
	TotalEmployees int
}

// CheckConcurrentLoad decides whether admitting a vacation over rng would push
// the number of staff on leave on any single business day above the policy
// cap. The caller pre-filters entries to CategoryVacation; overlap filtering
// and the excludeID exclusion (re-validating an edit against itself) happen
// here. Pure read/compute, never errors: an over-cap result is reported via
// IsValid=false.
func CheckConcurrentLoad(rng DateRange, entries []Entry, totalEmployees int, policy Policy, excludeID string) Verdict {
	start := dateOnly(rng.Start)
	end := dateOnly(rng.End)

	overlapping := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID == excludeID && excludeID != "" {
			continue
		}
		if !dateOnly(e.Start).After(end) && !dateOnly(e.End).Before(start) {
			overlapping = append(overlapping, e)
		}
	}

	peakCount := 0
	var peakDay time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		if !isBusinessDay(cur) {
			continue
		}
		daily := 1 // the proposed entry itself occupies this day
		for _, e := range overlapping {
			if !dateOnly(e.Start).After(cur) && !dateOnly(e.End).Before(cur) {
				daily++
			}
		}
		// Strict comparison: on a tie the first day encountered stays the peak.
		if daily > peakCount {
			peakCount = daily
			peakDay = cur
		}
	}

	maxAllowed := policy.MaxAllowed(totalEmployees)

	percentage := 0
	if totalEmployees > 0 {
		percentage = int(math.Round(float64(peakCount) / float64(totalEmployees) * 100))
	}

	return Verdict{
		IsValid:        peakCount <= maxAllowed,
		PeakCount:      peakCount,
		MaxAllowed:     maxAllowed,
		PeakDay:        peakDay,
		PeakPercentage: percentage,
		TotalEmployees: totalEmployees,
	}
}
