package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// LeaveRepository reads approved absences from the leave workflow.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository creates a new leave repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// ListApprovedTeacherLeave returns approved teacher leave whose window contains date.
// Both bounds are inclusive and compared as calendar days.
func (r *LeaveRepository) ListApprovedTeacherLeave(ctx context.Context, schoolID string, date time.Time) ([]models.LeaveRequest, error) {
	const query = `SELECT id, school_id, applicant_id, applicant_type, status, start_date, end_date FROM leave_requests
WHERE school_id = $1 AND applicant_type = $2 AND status = $3 AND start_date::date <= $4::date AND end_date::date >= $4::date`
	var leaves []models.LeaveRequest
	if err := r.db.SelectContext(ctx, &leaves, query, schoolID, models.LeaveApplicantTeacher, models.LeaveStatusApproved, models.DateOnly(date)); err != nil {
		return nil, fmt.Errorf("list approved teacher leave: %w", err)
	}
	return leaves, nil
}
