package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used everywhere in the booking core.
// Lexicographic order on this layout equals chronological order, so blocked
// intervals can be compared as plain strings with no timezone involved.
const DateLayout = "2006-01-02"

// ValidateDate checks that s is a strict "YYYY-MM-DD" calendar date.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return nil
}

// ValidateDateRange checks both endpoints and that start <= end.
func ValidateDateRange(start, end string) error {
	if err := ValidateDate(start); err != nil {
		return err
	}
	if err := ValidateDate(end); err != nil {
		return err
	}
	if start > end {
		return fmt.Errorf("invalid date range: start %s after end %s", start, end)
	}
	return nil
}

// Overlaps reports whether two inclusive date ranges share at least one day.
// Ranges that merely touch (one ends the day the other starts) DO overlap:
// same-day checkout/check-in is a conflict, not an allowed back-to-back.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// DaysInclusive returns the number of calendar days covered by [start, end].
// Both dates must already be validated.
func DaysInclusive(start, end string) int {
	s, _ := time.Parse(DateLayout, start)
	e, _ := time.Parse(DateLayout, end)
	return int(e.Sub(s).Hours()/24) + 1
}

// ExpandRange lists every date in [start, end] in order. Both dates must
// already be validated.
func ExpandRange(start, end string) []string {
	s, _ := time.Parse(DateLayout, start)
	e, _ := time.Parse(DateLayout, end)
	var days []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}
