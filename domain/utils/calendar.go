package utils

import (
	"time"
)

// WeekStart returns the most recent Monday at 00:00:00 relative to now.
// If now is a Monday it returns now truncated to midnight. Weeks are
// ISO-style: Monday starts the week, Sunday ends it.
func WeekStart(now time.Time) time.Time {
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(now.Weekday()) + 6) % 7
	day := now.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// WeekEnd returns the following Sunday at 23:59:59.999 relative to now.
func WeekEnd(now time.Time) time.Time {
	return WeekStart(now).AddDate(0, 0, 7).Add(-time.Millisecond)
}

// NextMonthFirst returns the 1st of the month after now, at 00:00:00.
func NextMonthFirst(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, 1, 0)
}

// WholeDaysUntil returns the number of whole days from now until t,
// rounding any partial day up. Zero or negative when t is not in the
// future.
func WholeDaysUntil(now, t time.Time) int {
	remaining := t.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// DaysSince returns the number of complete days elapsed from t to now.
func DaysSince(now, t time.Time) int {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}
