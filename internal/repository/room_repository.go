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

const roomColumns = `id, school_id, name, code, room_type, capacity, equipment, is_available, status, created_at, updated_at`

// RoomRepository persists the room inventory.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.Status == "" {
		room.Status = models.StatusActive
	}
	if room.Equipment == nil {
		room.Equipment = pq.StringArray{}
	}
	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	const query = `
INSERT INTO rooms (id, school_id, name, code, room_type, capacity, equipment, is_available, status, created_at, updated_at)
VALUES (:id, :school_id, :name, :code, :room_type, :capacity, :equipment, :is_available, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update stores the mutable room attributes.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now().UTC()
	const query = `
UPDATE rooms SET name = :name, code = :code, room_type = :room_type, capacity = :capacity, equipment = :equipment,
is_available = :is_available, updated_at = :updated_at WHERE id = :id AND school_id = :school_id`
	result, err := r.db.NamedExecContext(ctx, query, room)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("room rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate marks the room inactive. Entries referencing it are left untouched.
func (r *RoomRepository) Deactivate(ctx context.Context, schoolID, id string) error {
	const query = `UPDATE rooms SET status = $1, updated_at = $2 WHERE id = $3 AND school_id = $4`
	result, err := r.db.ExecContext(ctx, query, models.StatusInactive, time.Now().UTC(), id, schoolID)
	if err != nil {
		return fmt.Errorf("deactivate room: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("room rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID loads a room regardless of status.
func (r *RoomRepository) FindByID(ctx context.Context, schoolID, id string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 AND school_id = $2`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id, schoolID); err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns rooms matching filter ordered by name.
func (r *RoomRepository) List(ctx context.Context, schoolID string, filter models.RoomFilter) ([]models.Room, error) {
	conditions := []string{"school_id = $1"}
	args := []interface{}{schoolID}
	if !filter.IncludeInactive {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, models.StatusActive)
	}
	if filter.RoomType != "" {
		conditions = append(conditions, fmt.Sprintf("room_type = $%d", len(args)+1))
		args = append(args, filter.RoomType)
	}
	if filter.MinCapacity > 0 {
		conditions = append(conditions, fmt.Sprintf("capacity >= $%d", len(args)+1))
		args = append(args, filter.MinCapacity)
	}

	query := fmt.Sprintf("SELECT %s FROM rooms WHERE %s ORDER BY name ASC", roomColumns, strings.Join(conditions, " AND "))
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}
