// Package dates builds the YYYY-MM-DD keys that identify APOD entries.
package dates

import (
	"errors"
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// FirstYear is the year APOD started publishing.
const FirstYear = 1995

var (
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("invalid date range")
)

// month labels as shown by the month selector
var months = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "June",
	"July", "Aug", "Sept", "Oct", "Nov", "Dec",
}

// Format returns the calendar date of t in its own location as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today formats the current local date.
func Today(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return Format(now())
}

// Months returns the selectable month labels in calendar order.
func Months() []string {
	out := make([]string, len(months))
	copy(out, months)
	return out
}

// Years returns the selectable years, newest first.
func Years(now time.Time) []int {
	var years []int
	for y := now.Year(); y >= FirstYear+1; y-- {
		years = append(years, y)
	}
	return years
}

// ParseMonth maps a selector label to its month.
func ParseMonth(label string) (time.Month, error) {
	for i, m := range months {
		if m == label {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, label)
}

// MonthRange returns the first and last date keys of a month. When the month
// is the current one the range ends today.
func MonthRange(year int, label string, now time.Time) (string, string, error) {
	month, err := ParseMonth(label)
	if err != nil {
		return "", "", err
	}
	if year < FirstYear || year > now.Year() {
		return "", "", fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if year == now.Year() && month > now.Month() {
		return "", "", fmt.Errorf("%w: %s %d is in the future", ErrInvalidRange, label, year)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := Format(first)

	if year == now.Year() && month == now.Month() {
		return start, Format(now), nil
	}

	last := first.AddDate(0, 1, -1)
	return start, Format(last), nil
}

// Parse validates a YYYY-MM-DD key.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return t, nil
}

// ValidateRange checks that both keys parse and start is not after end.
func ValidateRange(start, end string) error {
	s, err := Parse(start)
	if err != nil {
		return err
	}
	e, err := Parse(end)
	if err != nil {
		return err
	}
	if s.After(e) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidRange, start, end)
	}
	return nil
}
