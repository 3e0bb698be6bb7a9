package availability

import (
	"slices"
	"time"
)

// HasGapWithin reports whether at least requiredMinutes of contiguous free
// time exist inside [windowStart, windowEnd) once lead time is applied.
func HasGapWithin(occupants []Occupant, windowStart, windowEnd time.Time, requiredMinutes, leadTimeMinutes int, now time.Time) bool {
	required := time.Duration(requiredMinutes) * time.Minute
	cursor := windowStart
	if earliest := now.Add(time.Duration(leadTimeMinutes) * time.Minute); earliest.After(cursor) {
		cursor = earliest
	}
	if !cursor.Before(windowEnd) {
		return false
	}

	sorted := slices.Clone(occupants)
	slices.SortFunc(sorted, func(a, b Occupant) int {
		return a.Start.Compare(b.Start)
	})

	for _, o := range sorted {
		if !o.Start.Before(windowEnd) {
			break
		}
		if !o.End.After(cursor) {
			continue
		}
		if o.Start.Sub(cursor) >= required {
			return true
		}
		cursor = o.End
	}

	return windowEnd.Sub(cursor) >= required
}
