package planner

import "time"

// CountBusinessDays counts the Monday-Friday days in [start, end], both
// endpoints inclusive. An empty range (start after end) yields 0; the write
// path validates ordering before calling.
func CountBusinessDays(start, end time.Time) int {
	count := 0
	last := dateOnly(end)
	for cur := dateOnly(start); !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		if isBusinessDay(cur) {
			count++
		}
	}
	return count
}
