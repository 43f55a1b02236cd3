package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const calendarConfigColumns = `id, school_id, academic_year, working_days, periods, shifts, status, created_by, deleted_at, created_at, updated_at`

// CalendarConfigRepository persists weekly calendar structures.
type CalendarConfigRepository struct {
	db *sqlx.DB
}

// NewCalendarConfigRepository constructs repository.
func NewCalendarConfigRepository(db *sqlx.DB) *CalendarConfigRepository {
	return &CalendarConfigRepository{db: db}
}

func (r *CalendarConfigRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a config row.
func (r *CalendarConfigRepository) Create(ctx context.Context, exec sqlx.ExtContext, cfg *models.CalendarConfig) error {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.Status == "" {
		cfg.Status = models.StatusActive
	}
	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	const query = `
INSERT INTO calendar_configs (id, school_id, academic_year, working_days, periods, shifts, status, created_by, created_at, updated_at)
VALUES (:id, :school_id, :academic_year, :working_days, :periods, :shifts, :status, :created_by, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, cfg); err != nil {
		return fmt.Errorf("insert calendar config: %w", err)
	}
	return nil
}

// DeactivateOthers marks every active config of the school except keepID as inactive.
func (r *CalendarConfigRepository) DeactivateOthers(ctx context.Context, exec sqlx.ExtContext, schoolID, keepID string) (int64, error) {
	const query = `UPDATE calendar_configs SET status = $1, updated_at = $2 WHERE school_id = $3 AND status = $4 AND id <> $5`
	result, err := r.exec(exec).ExecContext(ctx, query, models.StatusInactive, time.Now().UTC(), schoolID, models.StatusActive, keepID)
	if err != nil {
		return 0, fmt.Errorf("deactivate calendar configs: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("calendar config rows affected: %w", err)
	}
	return affected, nil
}

// SetStatus updates the lifecycle status of a non-deleted config.
func (r *CalendarConfigRepository) SetStatus(ctx context.Context, exec sqlx.ExtContext, schoolID, id string, status models.LifecycleStatus) error {
	const query = `UPDATE calendar_configs SET status = $1, updated_at = $2 WHERE id = $3 AND school_id = $4 AND deleted_at IS NULL`
	result, err := r.exec(exec).ExecContext(ctx, query, status, time.Now().UTC(), id, schoolID)
	if err != nil {
		return fmt.Errorf("update calendar config status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("calendar config rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStructure stores the working days, periods and shifts of a config.
func (r *CalendarConfigRepository) UpdateStructure(ctx context.Context, cfg *models.CalendarConfig) error {
	cfg.UpdatedAt = time.Now().UTC()
	const query = `
UPDATE calendar_configs SET working_days = :working_days, periods = :periods, shifts = :shifts, updated_at = :updated_at
WHERE id = :id AND school_id = :school_id AND deleted_at IS NULL`
	result, err := r.db.NamedExecContext(ctx, query, cfg)
	if err != nil {
		return fmt.Errorf("update calendar config structure: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("calendar config rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete hides a config while keeping its history.
func (r *CalendarConfigRepository) SoftDelete(ctx context.Context, schoolID, id string) error {
	now := time.Now().UTC()
	const query = `UPDATE calendar_configs SET deleted_at = $1, status = $2, updated_at = $1 WHERE id = $3 AND school_id = $4 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, now, models.StatusInactive, id, schoolID)
	if err != nil {
		return fmt.Errorf("soft delete calendar config: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("calendar config rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID loads a non-deleted config.
func (r *CalendarConfigRepository) FindByID(ctx context.Context, schoolID, id string) (*models.CalendarConfig, error) {
	query := `SELECT ` + calendarConfigColumns + ` FROM calendar_configs WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`
	var cfg models.CalendarConfig
	if err := r.db.GetContext(ctx, &cfg, query, id, schoolID); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindActive loads the school's active config.
func (r *CalendarConfigRepository) FindActive(ctx context.Context, schoolID string) (*models.CalendarConfig, error) {
	query := `SELECT ` + calendarConfigColumns + ` FROM calendar_configs WHERE school_id = $1 AND status = $2 AND deleted_at IS NULL ORDER BY updated_at DESC LIMIT 1`
	var cfg models.CalendarConfig
	if err := r.db.GetContext(ctx, &cfg, query, schoolID, models.StatusActive); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ExistsForYear reports whether a non-deleted config exists for the academic year.
func (r *CalendarConfigRepository) ExistsForYear(ctx context.Context, schoolID, academicYear string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM calendar_configs WHERE school_id = $1 AND academic_year = $2 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, schoolID, academicYear); err != nil {
		return false, fmt.Errorf("check calendar config year: %w", err)
	}
	return exists, nil
}

// List returns non-deleted configs newest first.
func (r *CalendarConfigRepository) List(ctx context.Context, schoolID string) ([]models.CalendarConfig, error) {
	query := `SELECT ` + calendarConfigColumns + ` FROM calendar_configs WHERE school_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	var configs []models.CalendarConfig
	if err := r.db.SelectContext(ctx, &configs, query, schoolID); err != nil {
		return nil, fmt.Errorf("list calendar configs: %w", err)
	}
	return configs, nil
}
