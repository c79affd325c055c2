package catalog

import (
	"time"
)

const dayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string in the given location. Malformed or
// empty strings yield ok=false and are treated as absent by all callers.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dayLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ResolveStatus derives the lifecycle state from the start date, deadline
// and current time. Rules are evaluated in order, first match wins:
// ended, upcoming, ongoing, open, unknown. All comparisons are at
// calendar-day granularity; the deadline day itself is still open.
func ResolveStatus(startDate, deadline string, now time.Time) Status {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	start, hasStart := ParseDay(startDate, now.Location())
	end, hasEnd := ParseDay(deadline, now.Location())

	switch {
	case hasEnd && end.Before(today):
		return StatusEnded
	case hasStart && start.After(today):
		return StatusUpcoming
	case hasStart && hasEnd && !today.Before(start) && !today.After(end):
		return StatusOngoing
	case hasEnd && !end.Before(today):
		return StatusOpen
	default:
		return StatusUnknown
	}
}
