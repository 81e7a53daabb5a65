// Package dateutil provides calendar-date arithmetic at day granularity.
// All reminder math works on dates, never times of day; every helper here
// normalizes to midnight UTC before comparing or stepping.
package dateutil

import "time"

// DayFormat is the canonical day-key layout used for exception keys and
// stored dates.
const DayFormat = "2006-01-02"

// Date truncates t to midnight UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate builds a midnight-UTC date from year/month/day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayKey formats t as its canonical day key, e.g. "2025-06-02".
func DayKey(t time.Time) string {
	return Date(t).Format(DayFormat)
}

// ParseDayKey parses a canonical day key back into a midnight-UTC date.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(DayFormat, key)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Date(a).Equal(Date(b))
}

// DaysBetween returns the number of calendar days from a to b
// (negative if b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped advances t by n calendar months, clamping the day of
// month to the last day of the target month. Unlike time.Time.AddDate,
// Jan 31 + 1 month is Feb 28 (or 29), never Mar 2-3. Clamping does not
// re-anchor: stepping again from Feb 28 yields Mar 28.
func AddMonthsClamped(t time.Time, n int) time.Time {
	t = Date(t)
	year, month := t.Year(), t.Month()
	// Normalize month overflow through time.Date.
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if max := DaysInMonth(first.Year(), first.Month()); day > max {
		day = max
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddYearsClamped advances t by n calendar years, clamping Feb 29 to
// Feb 28 in non-leap target years.
func AddYearsClamped(t time.Time, n int) time.Time {
	t = Date(t)
	day := t.Day()
	if max := DaysInMonth(t.Year()+n, t.Month()); day > max {
		day = max
	}
	return time.Date(t.Year()+n, t.Month(), day, 0, 0, 0, 0, time.UTC)
}
