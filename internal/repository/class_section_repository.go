package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// ClassSectionRepository reads class sections from the enrolment catalog.
type ClassSectionRepository struct {
	db *sqlx.DB
}

// NewClassSectionRepository creates a new class section repository.
func NewClassSectionRepository(db *sqlx.DB) *ClassSectionRepository {
	return &ClassSectionRepository{db: db}
}

// Find loads the section sectionID belonging to classID.
func (r *ClassSectionRepository) Find(ctx context.Context, schoolID, classID, sectionID string) (*models.ClassSection, error) {
	const query = `SELECT id, school_id, class_id, name, created_at FROM class_sections WHERE id = $1 AND class_id = $2 AND school_id = $3`
	var section models.ClassSection
	if err := r.db.GetContext(ctx, &section, query, sectionID, classID, schoolID); err != nil {
		return nil, err
	}
	return &section, nil
}
