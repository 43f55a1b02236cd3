package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const entryColumns = `id, school_id, class_id, section_id, day_of_week, period_number, teacher_id, subject_id, room_id, status, created_at, updated_at`

const entryOrder = `ORDER BY CASE day_of_week WHEN 'MONDAY' THEN 1 WHEN 'TUESDAY' THEN 2 WHEN 'WEDNESDAY' THEN 3 WHEN 'THURSDAY' THEN 4 WHEN 'FRIDAY' THEN 5 WHEN 'SATURDAY' THEN 6 ELSE 7 END, period_number ASC, class_id ASC, section_id ASC`

// TimetableEntryRepository provides persistence for timetable entries.
type TimetableEntryRepository struct {
	db *sqlx.DB
}

// NewTimetableEntryRepository creates a new entry repository.
func NewTimetableEntryRepository(db *sqlx.DB) *TimetableEntryRepository {
	return &TimetableEntryRepository{db: db}
}

// Create stores a new entry. Unique violations are returned wrapped so callers can map them.
func (r *TimetableEntryRepository) Create(ctx context.Context, entry *models.TimetableEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = models.StatusActive
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	const query = `
INSERT INTO timetable_entries (id, school_id, class_id, section_id, day_of_week, period_number, teacher_id, subject_id, room_id, status, created_at, updated_at)
VALUES (:id, :school_id, :class_id, :section_id, :day_of_week, :period_number, :teacher_id, :subject_id, :room_id, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create timetable entry: %w", err)
	}
	return nil
}

// Update overwrites the assignment fields of an active entry.
func (r *TimetableEntryRepository) Update(ctx context.Context, entry *models.TimetableEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `
UPDATE timetable_entries SET class_id = :class_id, section_id = :section_id, day_of_week = :day_of_week, period_number = :period_number,
teacher_id = :teacher_id, subject_id = :subject_id, room_id = :room_id, updated_at = :updated_at
WHERE id = :id AND school_id = :school_id AND status = 'ACTIVE'`
	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("update timetable entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("timetable entry rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate marks an active entry inactive. It returns sql.ErrNoRows when nothing changed.
func (r *TimetableEntryRepository) Deactivate(ctx context.Context, schoolID, id string) error {
	const query = `UPDATE timetable_entries SET status = $1, updated_at = $2 WHERE id = $3 AND school_id = $4 AND status = $5`
	result, err := r.db.ExecContext(ctx, query, models.StatusInactive, time.Now().UTC(), id, schoolID, models.StatusActive)
	if err != nil {
		return fmt.Errorf("deactivate timetable entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("timetable entry rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID loads an entry regardless of status.
func (r *TimetableEntryRepository) FindByID(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM timetable_entries WHERE id = $1 AND school_id = $2`
	var entry models.TimetableEntry
	if err := r.db.GetContext(ctx, &entry, query, id, schoolID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns a page of entries matching filter.
func (r *TimetableEntryRepository) List(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, int, error) {
	base, args := entryWhere(schoolID, filter)
	page, size := normalizePage(filter.Page, filter.PageSize)
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s %s LIMIT %d OFFSET %d", entryColumns, base, entryOrder, size, offset)
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list timetable entries: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count timetable entries: %w", err)
	}
	return entries, total, nil
}

// ListAll returns every entry matching filter without pagination.
func (r *TimetableEntryRepository) ListAll(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, error) {
	base, args := entryWhere(schoolID, filter)
	query := fmt.Sprintf("SELECT %s %s %s", entryColumns, base, entryOrder)
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}

// ListActiveAtSlot returns the active entries occupying (day, period).
func (r *TimetableEntryRepository) ListActiveAtSlot(ctx context.Context, schoolID, day string, period int) ([]models.TimetableEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM timetable_entries WHERE school_id = $1 AND day_of_week = $2 AND period_number = $3 AND status = $4`
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, schoolID, day, period, models.StatusActive); err != nil {
		return nil, fmt.Errorf("list timetable entries at slot: %w", err)
	}
	return entries, nil
}

func entryWhere(schoolID string, filter models.TimetableEntryFilter) (string, []interface{}) {
	conditions := []string{"school_id = $1"}
	args := []interface{}{schoolID}

	if !filter.IncludeInactive {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, models.StatusActive)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.SectionID != "" {
		conditions = append(conditions, fmt.Sprintf("section_id = $%d", len(args)+1))
		args = append(args, filter.SectionID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.RoomID != "" {
		conditions = append(conditions, fmt.Sprintf("room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if filter.DayOfWeek != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.PeriodNumber > 0 {
		conditions = append(conditions, fmt.Sprintf("period_number = $%d", len(args)+1))
		args = append(args, filter.PeriodNumber)
	}

	return "FROM timetable_entries WHERE " + strings.Join(conditions, " AND "), args
}
