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

const swapColumns = `id, school_id, entry_id_1, entry_id_2, swap_date, reason, requested_by, status, decided_by, decided_at, reject_reason, created_at, updated_at`

// PeriodSwapRepository persists swap requests.
type PeriodSwapRepository struct {
	db *sqlx.DB
}

// NewPeriodSwapRepository constructs repository.
func NewPeriodSwapRepository(db *sqlx.DB) *PeriodSwapRepository {
	return &PeriodSwapRepository{db: db}
}

// Create inserts a swap request.
func (r *PeriodSwapRepository) Create(ctx context.Context, swap *models.PeriodSwapRequest) error {
	if swap.ID == "" {
		swap.ID = uuid.NewString()
	}
	if swap.Status == "" {
		swap.Status = models.SwapPending
	}
	now := time.Now().UTC()
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = now
	}
	swap.UpdatedAt = now

	const query = `
INSERT INTO period_swap_requests (id, school_id, entry_id_1, entry_id_2, swap_date, reason, requested_by, status, created_at, updated_at)
VALUES (:id, :school_id, :entry_id_1, :entry_id_2, :swap_date, :reason, :requested_by, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, swap); err != nil {
		return fmt.Errorf("create period swap request: %w", err)
	}
	return nil
}

// FindByID loads a swap request.
func (r *PeriodSwapRepository) FindByID(ctx context.Context, schoolID, id string) (*models.PeriodSwapRequest, error) {
	query := `SELECT ` + swapColumns + ` FROM period_swap_requests WHERE id = $1 AND school_id = $2`
	var swap models.PeriodSwapRequest
	if err := r.db.GetContext(ctx, &swap, query, id, schoolID); err != nil {
		return nil, err
	}
	return &swap, nil
}

// ExistsPending reports whether a pending request covers the pair on date in either order.
func (r *PeriodSwapRepository) ExistsPending(ctx context.Context, schoolID, entryA, entryB string, date time.Time) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM period_swap_requests
WHERE school_id = $1 AND swap_date = $2 AND status = $3
AND LEAST(entry_id_1, entry_id_2) = LEAST($4::text, $5::text) AND GREATEST(entry_id_1, entry_id_2) = GREATEST($4::text, $5::text))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, schoolID, date, models.SwapPending, entryA, entryB); err != nil {
		return false, fmt.Errorf("check pending swap: %w", err)
	}
	return exists, nil
}

// Decide moves a pending request to a terminal status. It returns sql.ErrNoRows
// when the request is no longer pending.
func (r *PeriodSwapRepository) Decide(ctx context.Context, schoolID, id string, to models.SwapStatus, decidedBy string, rejectReason *string) error {
	now := time.Now().UTC()
	const query = `UPDATE period_swap_requests SET status = $1, decided_by = $2, decided_at = $3, reject_reason = $4, updated_at = $3
WHERE id = $5 AND school_id = $6 AND status = $7`
	result, err := r.db.ExecContext(ctx, query, to, decidedBy, now, rejectReason, id, schoolID, models.SwapPending)
	if err != nil {
		return fmt.Errorf("decide period swap request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("period swap rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns a page of swap requests newest first.
func (r *PeriodSwapRepository) List(ctx context.Context, schoolID string, filter models.SwapFilter) ([]models.PeriodSwapRequest, int, error) {
	conditions := []string{"school_id = $1"}
	args := []interface{}{schoolID}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("swap_date = $%d", len(args)+1))
		args = append(args, models.DateOnly(*filter.Date))
	}
	if filter.RequestedBy != "" {
		conditions = append(conditions, fmt.Sprintf("requested_by = $%d", len(args)+1))
		args = append(args, filter.RequestedBy)
	}
	base := "FROM period_swap_requests WHERE " + strings.Join(conditions, " AND ")

	page, size := normalizePage(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", swapColumns, base, size, (page-1)*size)
	var swaps []models.PeriodSwapRequest
	if err := r.db.SelectContext(ctx, &swaps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list period swap requests: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count period swap requests: %w", err)
	}
	return swaps, total, nil
}
