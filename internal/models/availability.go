package models

import "time"

// TeacherAvailability lists teachers free at a slot.
type TeacherAvailability struct {
	DayOfWeek     string     `json:"day_of_week"`
	PeriodNumber  int        `json:"period_number"`
	Date          *time.Time `json:"date,omitempty"`
	PeriodDefined bool       `json:"period_defined"`
	Warning       string     `json:"warning,omitempty"`
	Teachers      []Teacher  `json:"teachers"`
}

// RoomAvailability lists bookable rooms free at a slot.
type RoomAvailability struct {
	DayOfWeek     string `json:"day_of_week"`
	PeriodNumber  int    `json:"period_number"`
	PeriodDefined bool   `json:"period_defined"`
	Warning       string `json:"warning,omitempty"`
	Rooms         []Room `json:"rooms"`
}

// SubstituteSuggestion lists eligible free teachers for one entry on one date.
type SubstituteSuggestion struct {
	Entry         TimetableEntry `json:"entry"`
	Date          time.Time      `json:"date"`
	PeriodDefined bool           `json:"period_defined"`
	Warning       string         `json:"warning,omitempty"`
	Teachers      []Teacher      `json:"teachers"`
}

// ScheduleSummary aggregates per-school load figures derived from active entries.
type ScheduleSummary struct {
	SchoolID      string         `json:"school_id"`
	ActiveEntries int            `json:"active_entries"`
	TeacherLoads  map[string]int `json:"teacher_loads"`
	RoomLoads     map[string]int `json:"room_loads"`
	ClassLoads    map[string]int `json:"class_loads"`
	ConflictCount int            `json:"conflict_count"`
	GeneratedAt   time.Time      `json:"generated_at"`
}
