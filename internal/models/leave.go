package models

import "time"

// Leave request constants consumed from the HR collaborator.
const (
	LeaveStatusApproved   = "APPROVED"
	LeaveApplicantTeacher = "TEACHER"
)

// LeaveRequest is an absence window reported by the leave workflow.
type LeaveRequest struct {
	ID            string    `db:"id" json:"id"`
	SchoolID      string    `db:"school_id" json:"school_id"`
	ApplicantID   string    `db:"applicant_id" json:"applicant_id"`
	ApplicantType string    `db:"applicant_type" json:"applicant_type"`
	Status        string    `db:"status" json:"status"`
	StartDate     time.Time `db:"start_date" json:"start_date"`
	EndDate       time.Time `db:"end_date" json:"end_date"`
}

// Covers reports whether date falls inside the leave window, both ends inclusive,
// compared at day granularity.
func (l *LeaveRequest) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(l.StartDate)) && !d.After(DateOnly(l.EndDate))
}
