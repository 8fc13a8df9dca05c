package utils

import "time"

// DateFormat is the wire format for calendar dates (ISO-8601, no time component).
const DateFormat = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date into a UTC midnight instant.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate renders a calendar date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DaysBetween returns the number of calendar days in the inclusive range
// [from, to]. A range that collapses to a single day counts as 1 day; an
// inverted range also floors at 1 so division by the result is always safe.
func DaysBetween(from, to time.Time) int {
	from = truncateToDay(from)
	to = truncateToDay(to)
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// StartOfWeek returns midnight of the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = truncateToDay(t)
	weekday := int(t.Weekday())
	// time.Weekday puts Sunday at 0; weeks here start on Monday.
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// MonthKey returns the "YYYY-MM" grouping key for the month containing t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
