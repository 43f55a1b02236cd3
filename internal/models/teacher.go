package models

import (
	"time"

	"github.com/lib/pq"
)

// Teacher is the roster view the scheduler needs from the staff directory.
type Teacher struct {
	ID         string         `db:"id" json:"id"`
	SchoolID   string         `db:"school_id" json:"school_id"`
	FullName   string         `db:"full_name" json:"full_name"`
	SubjectIDs pq.StringArray `db:"subject_ids" json:"subject_ids"`
	Active     bool           `db:"active" json:"active"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// CanTeach reports whether the teacher may take a lesson of subjectID.
// An empty subject list means the teacher is unrestricted.
func (t *Teacher) CanTeach(subjectID string) bool {
	if len(t.SubjectIDs) == 0 {
		return true
	}
	for _, id := range t.SubjectIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}
