package models

import (
	"strings"
	"time"
)

// LifecycleStatus is the uniform soft-delete marker for configs, entries and rooms.
type LifecycleStatus string

const (
	StatusActive   LifecycleStatus = "ACTIVE"
	StatusInactive LifecycleStatus = "INACTIVE"
)

// Days of the week as stored on entries and calendar configs.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

var weekOrder = map[string]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
	Sunday:    7,
}

// NormalizeDay upper-cases and validates a day name.
func NormalizeDay(day string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(day))
	_, ok := weekOrder[normalized]
	return normalized, ok
}

// DayIndex returns the 1-based position of day within the week, or 0 when unknown.
func DayIndex(day string) int {
	return weekOrder[strings.ToUpper(day)]
}

// DayOfDate maps a calendar date to its day name.
func DayOfDate(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"
