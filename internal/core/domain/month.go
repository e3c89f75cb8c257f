package domain

import (
	"fmt"
	"time"
)

// MonthKey is the canonical string form of a report month: the first day of
// the calendar month as YYYY-MM-01. It is the only accepted key for report
// month equality and ordering.
type MonthKey string

const monthKeyLayout = "2006-01-02"

// ParseMonthKey validates and normalizes a month key string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("month key %q is not a YYYY-MM-01 date", s)
	}
	if t.Day() != 1 {
		return "", fmt.Errorf("month key %q must be the first day of the month", s)
	}
	return MonthKey(s), nil
}

// MonthKeyOf returns the month key for the calendar month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(monthKeyLayout))
}

// Time returns the first-of-month instant for the key. Zero time for an
// invalid or empty key.
func (m MonthKey) Time() time.Time {
	t, err := time.Parse(monthKeyLayout, string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Prev returns the key of the immediately preceding calendar month.
func (m MonthKey) Prev() MonthKey {
	return MonthKeyOf(m.Time().AddDate(0, -1, 0))
}

// Next returns the key of the immediately following calendar month.
func (m MonthKey) Next() MonthKey {
	return MonthKeyOf(m.Time().AddDate(0, 1, 0))
}

// Year returns the calendar year of the key.
func (m MonthKey) Year() int {
	return m.Time().Year()
}

// Before reports whether m orders strictly before other. Lexicographic order
// on the canonical form matches chronological order.
func (m MonthKey) Before(other MonthKey) bool {
	return string(m) < string(other)
}

func (m MonthKey) String() string {
	return string(m)
}
