package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const teacherColumns = `id, school_id, full_name, subject_ids, active, created_at, updated_at`

// TeacherRepository reads the teacher roster owned by the staff directory.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new teacher repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID loads a teacher of the school.
func (r *TeacherRepository) FindByID(ctx context.Context, schoolID, id string) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1 AND school_id = $2`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id, schoolID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ListActive returns the active roster ordered by name.
func (r *TeacherRepository) ListActive(ctx context.Context, schoolID string) ([]models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE school_id = $1 AND active = TRUE ORDER BY full_name ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, schoolID); err != nil {
		return nil, fmt.Errorf("list active teachers: %w", err)
	}
	return teachers, nil
}
