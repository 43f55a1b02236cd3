package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const substituteColumns = `id, school_id, original_entry_id, original_teacher_id, substitute_teacher_id, assignment_date, day_of_week, period_number, reason, status, created_by, cancel_reason, created_at, updated_at`

var openSubstituteStatuses = []string{string(models.SubstitutePending), string(models.SubstituteConfirmed)}

// SubstituteRepository persists substitute assignments.
type SubstituteRepository struct {
	db *sqlx.DB
}

// NewSubstituteRepository constructs repository.
func NewSubstituteRepository(db *sqlx.DB) *SubstituteRepository {
	return &SubstituteRepository{db: db}
}

// Create inserts an assignment.
func (r *SubstituteRepository) Create(ctx context.Context, assignment *models.SubstituteAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now

	const query = `
INSERT INTO substitute_assignments (id, school_id, original_entry_id, original_teacher_id, substitute_teacher_id, assignment_date,
day_of_week, period_number, reason, status, created_by, created_at, updated_at)
VALUES (:id, :school_id, :original_entry_id, :original_teacher_id, :substitute_teacher_id, :assignment_date,
:day_of_week, :period_number, :reason, :status, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create substitute assignment: %w", err)
	}
	return nil
}

// FindByID loads an assignment.
func (r *SubstituteRepository) FindByID(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error) {
	query := `SELECT ` + substituteColumns + ` FROM substitute_assignments WHERE id = $1 AND school_id = $2`
	var assignment models.SubstituteAssignment
	if err := r.db.GetContext(ctx, &assignment, query, id, schoolID); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindOpenForEntry returns the non-terminal assignment of an entry on date.
func (r *SubstituteRepository) FindOpenForEntry(ctx context.Context, schoolID, entryID string, date time.Time) (*models.SubstituteAssignment, error) {
	query := `SELECT ` + substituteColumns + ` FROM substitute_assignments
WHERE school_id = $1 AND original_entry_id = $2 AND assignment_date = $3 AND status = ANY($4) LIMIT 1`
	var assignment models.SubstituteAssignment
	if err := r.db.GetContext(ctx, &assignment, query, schoolID, entryID, date, pq.Array(openSubstituteStatuses)); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListOpenAtSlot returns the non-terminal assignments covering period on date.
func (r *SubstituteRepository) ListOpenAtSlot(ctx context.Context, schoolID string, date time.Time, period int) ([]models.SubstituteAssignment, error) {
	query := `SELECT ` + substituteColumns + ` FROM substitute_assignments
WHERE school_id = $1 AND assignment_date = $2 AND period_number = $3 AND status = ANY($4)`
	var assignments []models.SubstituteAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, schoolID, date, period, pq.Array(openSubstituteStatuses)); err != nil {
		return nil, fmt.Errorf("list substitute assignments at slot: %w", err)
	}
	return assignments, nil
}

// Transition moves an assignment to status when its current status is one of from.
// It returns sql.ErrNoRows when no row matched.
func (r *SubstituteRepository) Transition(ctx context.Context, schoolID, id string, from []models.SubstituteStatus, to models.SubstituteStatus, cancelReason *string) error {
	allowed := make([]string, 0, len(from))
	for _, status := range from {
		allowed = append(allowed, string(status))
	}
	const query = `UPDATE substitute_assignments SET status = $1, cancel_reason = COALESCE($2, cancel_reason), updated_at = $3
WHERE id = $4 AND school_id = $5 AND status = ANY($6)`
	result, err := r.db.ExecContext(ctx, query, to, cancelReason, time.Now().UTC(), id, schoolID, pq.Array(allowed))
	if err != nil {
		return fmt.Errorf("transition substitute assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("substitute assignment rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CompleteElapsed completes confirmed assignments dated before asOf. An empty
// schoolID applies the sweep to every school.
func (r *SubstituteRepository) CompleteElapsed(ctx context.Context, schoolID string, asOf time.Time) (int64, error) {
	query := `UPDATE substitute_assignments SET status = $1, updated_at = $2 WHERE status = $3 AND assignment_date < $4`
	args := []interface{}{models.SubstituteCompleted, time.Now().UTC(), models.SubstituteConfirmed, asOf}
	if schoolID != "" {
		query += ` AND school_id = $5`
		args = append(args, schoolID)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("complete elapsed substitute assignments: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("substitute assignment rows affected: %w", err)
	}
	return affected, nil
}

// List returns a page of assignments ordered by date.
func (r *SubstituteRepository) List(ctx context.Context, schoolID string, filter models.SubstituteFilter) ([]models.SubstituteAssignment, int, error) {
	conditions := []string{"school_id = $1"}
	args := []interface{}{schoolID}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("assignment_date = $%d", len(args)+1))
		args = append(args, models.DateOnly(*filter.Date))
	}
	if filter.TeacherID != "" {
		idx := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(substitute_teacher_id = $%d OR original_teacher_id = $%d)", idx, idx))
		args = append(args, filter.TeacherID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	base := "FROM substitute_assignments WHERE " + strings.Join(conditions, " AND ")

	page, size := normalizePage(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY assignment_date DESC, period_number ASC LIMIT %d OFFSET %d", substituteColumns, base, size, (page-1)*size)
	var assignments []models.SubstituteAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list substitute assignments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count substitute assignments: %w", err)
	}
	return assignments, total, nil
}
