package calendar

import "time"

// immDay is the roll day of the standard CDS quarterly dates (20 Mar/Jun/Sep/Dec).
const immDay = 20

func isIMMMonth(m time.Month) bool {
	return m == time.March || m == time.June || m == time.September || m == time.December
}

// IsIMMDate reports whether t is an unadjusted CDS IMM date.
func IsIMMDate(t time.Time) bool {
	return t.Day() == immDay && isIMMMonth(t.Month())
}

// NextIMMDate returns the first IMM date strictly after t.
func NextIMMDate(t time.Time) time.Time {
	y, m, d := t.Date()
	if isIMMMonth(m) && d < immDay {
		return time.Date(y, m, immDay, 0, 0, 0, 0, time.UTC)
	}
	next := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	for {
		next = next.AddDate(0, 1, 0)
		if isIMMMonth(next.Month()) {
			return time.Date(next.Year(), next.Month(), immDay, 0, 0, 0, 0, time.UTC)
		}
	}
}

// PrevIMMDate returns the last IMM date on or before t.
func PrevIMMDate(t time.Time) time.Time {
	y, m, d := t.Date()
	if isIMMMonth(m) && d >= immDay {
		return time.Date(y, m, immDay, 0, 0, 0, 0, time.UTC)
	}
	prev := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	for {
		prev = prev.AddDate(0, -1, 0)
		if isIMMMonth(prev.Month()) {
			return time.Date(prev.Year(), prev.Month(), immDay, 0, 0, 0, 0, time.UTC)
		}
	}
}
