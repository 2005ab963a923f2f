package planner

import "github.com/shopspring/decimal"

// Totals holds the derived per-employee day counters. These are never
// authoritative on their own: they are always recomputed from the entry set.
type Totals struct {
	VacationDaysUsed decimal.Decimal
	SickDaysUsed     decimal.Decimal
	SpecialDaysUsed  decimal.Decimal
}

// RecomputeTotals sums Days grouped by category over one employee's entries.
// Entries with an unrecognized category are skipped. Idempotent: the result
// depends only on the entry set passed in.
func RecomputeTotals(entries []Entry) Totals {
	t := Totals{
		VacationDaysUsed: decimal.Zero,
		SickDaysUsed:     decimal.Zero,
		SpecialDaysUsed:  decimal.Zero,
	}
	for _, e := range entries {
		switch e.Category {
		case CategoryVacation:
			t.VacationDaysUsed = t.VacationDaysUsed.Add(e.Days)
		case CategorySick:
			t.SickDaysUsed = t.SickDaysUsed.Add(e.Days)
		case CategorySpecial:
			t.SpecialDaysUsed = t.SpecialDaysUsed.Add(e.Days)
		}
	}
	return t
}
