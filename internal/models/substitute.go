package models

import "time"

// SubstituteStatus tracks the lifecycle of a substitute assignment.
type SubstituteStatus string

const (
	SubstitutePending   SubstituteStatus = "PENDING"
	SubstituteConfirmed SubstituteStatus = "CONFIRMED"
	SubstituteCompleted SubstituteStatus = "COMPLETED"
	SubstituteCancelled SubstituteStatus = "CANCELLED"
)

// Open reports whether the status still blocks the entry and date.
func (s SubstituteStatus) Open() bool {
	return s == SubstitutePending || s == SubstituteConfirmed
}

// SubstituteAssignment is a date scoped reassignment of one entry's teacher.
type SubstituteAssignment struct {
	ID                  string           `db:"id" json:"id"`
	SchoolID            string           `db:"school_id" json:"school_id"`
	OriginalEntryID     string           `db:"original_entry_id" json:"original_entry_id"`
	OriginalTeacherID   string           `db:"original_teacher_id" json:"original_teacher_id"`
	SubstituteTeacherID string           `db:"substitute_teacher_id" json:"substitute_teacher_id"`
	AssignmentDate      time.Time        `db:"assignment_date" json:"assignment_date"`
	DayOfWeek           string           `db:"day_of_week" json:"day_of_week"`
	PeriodNumber        int              `db:"period_number" json:"period_number"`
	Reason              string           `db:"reason" json:"reason"`
	Status              SubstituteStatus `db:"status" json:"status"`
	CreatedBy           *string          `db:"created_by" json:"created_by,omitempty"`
	CancelReason        *string          `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CreatedAt           time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at" json:"updated_at"`
}

// SubstituteFilter narrows substitute listings.
type SubstituteFilter struct {
	Date      *time.Time
	TeacherID string
	Status    SubstituteStatus
	Page      int
	PageSize  int
}
