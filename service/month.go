package service

import (
	"fmt"
	"time"
)

// ParseMonthKey parses a month reference supplied by a caller. Both "2026-08"
// and "2026-08-01" shapes are accepted; anything else, including a mid-month
// date, is rejected before any per-creator work starts.
func ParseMonthKey(key string) (time.Time, error) {
	var t time.Time
	var err error
	switch len(key) {
	case len("2006-01"):
		t, err = time.Parse("2006-01", key)
	case len("2006-01-02"):
		t, err = time.Parse("2006-01-02", key)
		if err == nil && t.Day() != 1 {
			return time.Time{}, fmt.Errorf("invalid month key %q: day must be 01", key)
		}
	default:
		return time.Time{}, fmt.Errorf("invalid month key %q: expected YYYY-MM or YYYY-MM-01", key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// MonthOf truncates a date to the first day of its month.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (first, last time.Time) {
	first = MonthOf(t)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	_, last := MonthBounds(t)
	return last.Day()
}

// ClampEvaluationDate pins an evaluation date inside the target month.
// Evaluating a past month uses its last day (zero days remaining), a future
// month its first day; the current month evaluates as of now. Keeps pacing
// math deterministic for any (now, month) combination.
func ClampEvaluationDate(now, month time.Time) time.Time {
	first, last := MonthBounds(month)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(first) {
		return first
	}
	if day.After(last) {
		return last
	}
	return day
}
