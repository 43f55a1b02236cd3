package models

import "time"

// TimetableEntry is one class section's occupancy of a weekly slot.
type TimetableEntry struct {
	ID           string          `db:"id" json:"id"`
	SchoolID     string          `db:"school_id" json:"school_id"`
	ClassID      string          `db:"class_id" json:"class_id"`
	SectionID    string          `db:"section_id" json:"section_id"`
	DayOfWeek    string          `db:"day_of_week" json:"day_of_week"`
	PeriodNumber int             `db:"period_number" json:"period_number"`
	TeacherID    string          `db:"teacher_id" json:"teacher_id"`
	SubjectID    string          `db:"subject_id" json:"subject_id"`
	RoomID       *string         `db:"room_id" json:"room_id,omitempty"`
	Status       LifecycleStatus `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the entry currently occupies its slot.
func (e *TimetableEntry) IsActive() bool {
	return e.Status == StatusActive
}

// Slot returns the entry's (day, period) pair.
func (e *TimetableEntry) Slot() Slot {
	return Slot{DayOfWeek: e.DayOfWeek, PeriodNumber: e.PeriodNumber}
}

// Slot is a (day, period) pair within a school's week.
type Slot struct {
	DayOfWeek    string `json:"day_of_week"`
	PeriodNumber int    `json:"period_number"`
}

// TimetableEntryFilter describes query params for listing entries.
type TimetableEntryFilter struct {
	ClassID         string
	SectionID       string
	TeacherID       string
	RoomID          string
	DayOfWeek       string
	PeriodNumber    int
	IncludeInactive bool
	Page            int
	PageSize        int
}

// ConflictType names the resource that is double-booked.
type ConflictType string

const (
	ConflictTeacher ConflictType = "TEACHER"
	ConflictRoom    ConflictType = "ROOM"
	ConflictClass   ConflictType = "CLASS"
)

// Conflict describes two or more active entries sharing a resource at one slot.
type Conflict struct {
	Type         ConflictType `json:"type"`
	DayOfWeek    string       `json:"day_of_week"`
	PeriodNumber int          `json:"period_number"`
	ResourceID   string       `json:"resource_id"`
	Description  string       `json:"description"`
	Entries      []string     `json:"entries"`
}

// ConflictReport is the result of a full conflict scan.
type ConflictReport struct {
	SchoolID   string     `json:"school_id"`
	Conflicts  []Conflict `json:"conflicts"`
	ScannedAt  time.Time  `json:"scanned_at"`
	EntryCount int        `json:"entry_count"`
	FromCache  bool       `json:"from_cache"`
}

// SchedulingConflictError is returned when a write would double-book a resource.
type SchedulingConflictError struct {
	Message   string     `json:"message"`
	Conflicts []Conflict `json:"conflicts"`
}

// Error implements the error interface for conflict errors.
func (e *SchedulingConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// EntryIDs lists every colliding entry id once.
func (e *SchedulingConflictError) EntryIDs() []string {
	if e == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, c := range e.Conflicts {
		for _, id := range c.Entries {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// GridCell holds the entries found at one slot of a class grid. More than one
// entry marks an anomaly that must be resolved by an administrator.
type GridCell struct {
	DayOfWeek    string           `json:"day_of_week"`
	PeriodNumber int              `json:"period_number"`
	PeriodType   PeriodType       `json:"period_type"`
	Entries      []TimetableEntry `json:"entries"`
	Anomaly      bool             `json:"anomaly"`
}

// ClassGrid is the weekly day by period view of one class section.
type ClassGrid struct {
	ClassID          string           `json:"class_id"`
	SectionID        string           `json:"section_id"`
	CalendarID       string           `json:"calendar_id"`
	WorkingDays      []string         `json:"working_days"`
	Periods          []Period         `json:"periods"`
	Cells            []GridCell       `json:"cells"`
	UndefinedPeriods []TimetableEntry `json:"undefined_periods"`
	AnomalyCount     int              `json:"anomaly_count"`
}
