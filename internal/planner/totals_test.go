package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entryWithDays(category Category, days string) Entry {
	d, _ := decimal.NewFromString(days)
	return Entry{Category: category, Days: d}
}

func TestRecomputeTotalsGroupsByCategory(t *testing.T) {
	entries := []Entry{
		entryWithDays(CategoryVacation, "5"),
		entryWithDays(CategoryVacation, "2"),
		entryWithDays(CategorySick, "1"),
		entryWithDays(CategorySpecial, "0.5"),
	}

	totals := RecomputeTotals(entries)

	assert.True(t, totals.VacationDaysUsed.Equal(decimal.NewFromInt(7)))
	assert.True(t, totals.SickDaysUsed.Equal(decimal.NewFromInt(1)))
	assert.True(t, totals.SpecialDaysUsed.Equal(decimal.RequireFromString("0.5")))
}

func TestRecomputeTotalsEmptySet(t *testing.T) {
	totals := RecomputeTotals(nil)

	assert.True(t, totals.VacationDaysUsed.IsZero())
	assert.True(t, totals.SickDaysUsed.IsZero())
	assert.True(t, totals.SpecialDaysUsed.IsZero())
}

func TestRecomputeTotalsIgnoresUnknownCategory(t *testing.T) {
	entries := []Entry{
		entryWithDays(CategoryVacation, "3"),
		entryWithDays(Category("PARENTAL"), "10"),
	}

	totals := RecomputeTotals(entries)

	assert.True(t, totals.VacationDaysUsed.Equal(decimal.NewFromInt(3)))
	assert.True(t, totals.SickDaysUsed.IsZero())
	assert.True(t, totals.SpecialDaysUsed.IsZero())
}

func TestRecomputeTotalsIdempotent(t *testing.T) {
	entries := []Entry{
		entryWithDays(CategoryVacation, "5"),
		entryWithDays(CategorySick, "2"),
	}

	first := RecomputeTotals(entries)
	second := RecomputeTotals(entries)

	assert.True(t, first.VacationDaysUsed.Equal(second.VacationDaysUsed))
	assert.True(t, first.SickDaysUsed.Equal(second.SickDaysUsed))
	assert.True(t, first.SpecialDaysUsed.Equal(second.SpecialDaysUsed))
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryVacation.Valid())
	assert.True(t, CategorySick.Valid())
	assert.True(t, CategorySpecial.Valid())
	assert.False(t, Category("URLAUB").Valid())
	assert.False(t, Category("").Valid())
}
