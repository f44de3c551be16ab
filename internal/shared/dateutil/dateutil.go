package dateutil

import (
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// human readable date used in notifications and slips
	DisplayLayout = "02 Jan 2006"
)

// Parse accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
func Parse(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.ParseInLocation(DateLayout, v, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// ParseOptional returns (nil, nil) for nil or blank input.
func ParseOptional(v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := Parse(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthRange returns [first day of month, first day of next month).
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
