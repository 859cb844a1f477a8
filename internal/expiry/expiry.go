package expiry

import (
	"fmt"
	"time"
)

var defaultLoc = time.UTC

// SetDefaultLocation sets the time location used for expiry comparisons
// (fallback UTC).
func SetDefaultLocation(loc *time.Location) {
	if loc != nil {
		defaultLoc = loc
	}
}

// EndOfMonth returns the last calendar day of (month, year) at midnight in
// loc. Month must be in 1..12.
func EndOfMonth(month, year int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be 1..12, got %d", month)
	}
	if loc == nil {
		loc = defaultLoc
	}
	// First day of the next month, minus one day.
	firstNext := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	return firstNext.AddDate(0, 0, -1), nil
}

// Expired reports whether the last day of (month, year) falls strictly
// before the calendar date of 'at'. The comparison is date-based: a card
// expiring this month is still good today.
func Expired(month, year int, at time.Time) (bool, error) {
	end, err := EndOfMonth(month, year, defaultLoc)
	if err != nil {
		return false, err
	}
	at = at.In(defaultLoc)
	today := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, defaultLoc)
	return end.Before(today), nil
}
