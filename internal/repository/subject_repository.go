package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// SubjectRepository reads the subject catalog.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// FindByID loads a subject of the school.
func (r *SubjectRepository) FindByID(ctx context.Context, schoolID, id string) (*models.Subject, error) {
	const query = `SELECT id, school_id, code, name, created_at FROM subjects WHERE id = $1 AND school_id = $2`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id, schoolID); err != nil {
		return nil, err
	}
	return &subject, nil
}
