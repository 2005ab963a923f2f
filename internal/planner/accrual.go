package planner

import "time"

// MonthKeyLayout is the format of the persisted "last processed month" marker
// that keeps the accrual job idempotent per calendar month.
const MonthKeyLayout = "2006-01"

// MonthKey returns the marker value for the month containing t.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// MonthsSince lists the month keys that still need an accrual run: every
// month strictly after the marker, up to and including the month of now.
// An empty or unparseable marker yields only the current month, so a fresh
// installation does not back-credit history.
func MonthsSince(marker string, now time.Time) []string {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	last, err := time.Parse(MonthKeyLayout, marker)
	if err != nil {
		return []string{MonthKey(current)}
	}

	var months []string
	for m := last.AddDate(0, 1, 0); !m.After(current); m = m.AddDate(0, 1, 0) {
		months = append(months, MonthKey(m))
	}
	return months
}
