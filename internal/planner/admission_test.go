package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicyMaxAllowed(t *testing.T) {
	tests := []struct {
		name       string
		percentage int
		employees  int
		want       int
	}{
		{"ten at thirty percent", 30, 10, 3},
		{"floors down", 30, 11, 3},
		{"never below one", 30, 0, 1},
		{"small team floors to one", 30, 3, 1},
		{"full percentage", 100, 10, 10},
		{"seven at thirty", 30, 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{MaxConcurrentPercentage: tt.percentage}
			assert.Equal(t, tt.want, p.MaxAllowed(tt.employees))
		})
	}
}

func vacation(id string, start, end time.Time) Entry {
	return Entry{ID: id, Category: CategoryVacation, Start: start, End: end}
}

func TestCheckConcurrentLoadRejectsFourthOverlap(t *testing.T) {
	// 2025-02-10 is a Monday covered by three existing vacations.
	monday := date(2025, time.February, 10)
	entries := []Entry{
		vacation("a", date(2025, time.February, 3), date(2025, time.February, 14)),
		vacation("b", monday, monday),
		vacation("c", date(2025, time.February, 10), date(2025, time.February, 12)),
	}

	v := CheckConcurrentLoad(DateRange{Start: monday, End: monday}, entries, 10, Policy{MaxConcurrentPercentage: 30}, "")

	assert.False(t, v.IsValid)
	assert.Equal(t, 4, v.PeakCount)
	assert.Equal(t, 3, v.MaxAllowed)
	assert.Equal(t, monday, v.PeakDay)
	assert.Equal(t, 40, v.PeakPercentage)
	assert.Equal(t, 10, v.TotalEmployees)
}

func TestCheckConcurrentLoadAdmitsWithinCap(t *testing.T) {
	monday := date(2025, time.February, 10)
	entries := []Entry{
		vacation("a", monday, monday),
		vacation("b", monday, monday),
	}

	v := CheckConcurrentLoad(DateRange{Start: monday, End: monday}, entries, 10, Policy{MaxConcurrentPercentage: 30}, "")

	assert.True(t, v.IsValid)
	assert.Equal(t, 3, v.PeakCount)
}

func TestCheckConcurrentLoadOrderInvariant(t *testing.T) {
	rng := DateRange{Start: date(2025, time.February, 10), End: date(2025, time.February, 14)}
	entries := []Entry{
		vacation("a", date(2025, time.February, 3), date(2025, time.February, 11)),
		vacation("b", date(2025, time.February, 12), date(2025, time.February, 20)),
		vacation("c", date(2025, time.February, 10), date(2025, time.February, 10)),
	}
	reversed := []Entry{entries[2], entries[1], entries[0]}

	forward := CheckConcurrentLoad(rng, entries, 10, Policy{MaxConcurrentPercentage: 30}, "")
	backward := CheckConcurrentLoad(rng, reversed, 10, Policy{MaxConcurrentPercentage: 30}, "")

	assert.Equal(t, forward, backward)
}

func TestCheckConcurrentLoadZeroEmployees(t *testing.T) {
	monday := date(2025, time.February, 10)

	v := CheckConcurrentLoad(DateRange{Start: monday, End: monday}, nil, 0, Policy{MaxConcurrentPercentage: 30}, "")

	assert.Equal(t, 1, v.MaxAllowed)
	assert.Equal(t, 0, v.PeakPercentage)
	assert.Equal(t, 1, v.PeakCount)
	assert.True(t, v.IsValid)
}

func TestCheckConcurrentLoadExcludesEditedEntry(t *testing.T) {
	monday := date(2025, time.February, 10)
	entries := []Entry{
		vacation("edited", monday, monday),
		vacation("a", monday, monday),
		vacation("b", monday, monday),
	}
	policy := Policy{MaxConcurrentPercentage: 30}

	withSelf := CheckConcurrentLoad(DateRange{Start: monday, End: monday}, entries, 10, policy, "")
	assert.False(t, withSelf.IsValid)
	assert.Equal(t, 4, withSelf.PeakCount)

	excluded := CheckConcurrentLoad(DateRange{Start: monday, End: monday}, entries, 10, policy, "edited")
	assert.True(t, excluded.IsValid)
	assert.Equal(t, 3, excluded.PeakCount)
}

func TestCheckConcurrentLoadTieKeepsFirstDay(t *testing.T) {
	// Both Monday and Tuesday reach the same peak; the earlier day wins.
	monday := date(2025, time.February, 10)
	tuesday := date(2025, time.February, 11)
	entries := []Entry{
		vacation("a", monday, tuesday),
	}

	v := CheckConcurrentLoad(DateRange{Start: monday, End: tuesday}, entries, 10, Policy{MaxConcurrentPercentage: 30}, "")

	assert.Equal(t, 2, v.PeakCount)
	assert.Equal(t, monday, v.PeakDay)
}

func TestCheckConcurrentLoadWeekendOnlyRange(t *testing.T) {
	saturday := date(2025, time.February, 8)
	sunday := date(2025, time.February, 9)

	v := CheckConcurrentLoad(DateRange{Start: saturday, End: sunday}, nil, 10, Policy{MaxConcurrentPercentage: 30}, "")

	assert.True(t, v.IsValid)
	assert.Equal(t, 0, v.PeakCount)
	assert.True(t, v.PeakDay.IsZero())
}

func TestCheckConcurrentLoadOverlapBoundaries(t *testing.T) {
	rng := DateRange{Start: date(2025, time.February, 10), End: date(2025, time.February, 12)}
	entries := []Entry{
		// Ends exactly on the range start: overlaps.
		vacation("touch-start", date(2025, time.February, 3), date(2025, time.February, 10)),
		// Starts exactly on the range end: overlaps.
		vacation("touch-end", date(2025, time.February, 12), date(2025, time.February, 20)),
		// Entirely before the range: filtered out.
		vacation("before", date(2025, time.February, 3), date(2025, time.February, 7)),
		// Entirely after the range: filtered out.
		vacation("after", date(2025, time.February, 13), date(2025, time.February, 20)),
	}

	v := CheckConcurrentLoad(rng, entries, 10, Policy{MaxConcurrentPercentage: 30}, "")

	// Peak is 2: the proposed entry plus one boundary entry on Monday the 10th.
	assert.Equal(t, 2, v.PeakCount)
	assert.Equal(t, date(2025, time.February, 10), v.PeakDay)
}
