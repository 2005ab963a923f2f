package planner

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category values are stored verbatim in the vacation_type column and must
// stay stable for existing data.
type Category string

const (
	CategoryVacation Category = "VACATION"
	CategorySick     Category = "SICK"
	CategorySpecial  Category = "SPECIAL"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryVacation, CategorySick, CategorySpecial:
		return true
	}
	return false
}

// Entry is the snapshot of a leave entry the core functions operate on.
// Callers pass copies of store data; nothing here mutates shared state.
type Entry struct {
	ID         string
	EmployeeID string
	Category   Category
	Start      time.Time
	End        time.Time
	Days       decimal.Decimal
}

type DateRange struct {
	Start time.Time
	End   time.Time
}

// Policy is the single configuration surface of the admission check.
type Policy struct {
	MaxConcurrentPercentage int
}

// MaxAllowed floors to at least one so a single-person team can still
// take vacation.
func (p Policy) MaxAllowed(totalEmployees int) int {
	n := totalEmployees * p.MaxConcurrentPercentage / 100
	if n < 1 {
		n = 1
	}
	return n
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
