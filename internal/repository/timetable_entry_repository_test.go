package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

var entryRowColumns = []string{"id", "school_id", "class_id", "section_id", "day_of_week", "period_number", "teacher_id", "subject_id", "room_id", "status", "created_at", "updated_at"}

func TestTimetableEntryRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_entries")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.TimetableEntry{SchoolID: "school-1", ClassID: "10", SectionID: "A", DayOfWeek: models.Monday, PeriodNumber: 1, TeacherID: "t1", SubjectID: "math"}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.StatusActive, entry.Status)
	assert.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableEntryRepositoryCreateSurfacesUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_entries")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: ConstraintEntryTeacherSlot})

	err := repo.Create(context.Background(), &models.TimetableEntry{SchoolID: "school-1"})
	require.Error(t, err)
	constraint, ok := UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, ConstraintEntryTeacherSlot, constraint)
}

func TestTimetableEntryRepositoryUpdateInactive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE timetable_entries SET class_id")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.TimetableEntry{ID: "e1", SchoolID: "school-1"})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableEntryRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE timetable_entries SET status")).
		WithArgs("INACTIVE", sqlmock.AnyArg(), "e1", "school-1", "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "school-1", "e1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableEntryRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(entryRowColumns).
		AddRow("e1", "school-1", "10", "A", "MONDAY", 1, "t1", "math", "r1", "ACTIVE", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, school_id, class_id")+".*LIMIT 10 OFFSET 10").
		WithArgs("school-1", "ACTIVE", "t1", "MONDAY").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM timetable_entries")).
		WithArgs("school-1", "ACTIVE", "t1", "MONDAY").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	entries, total, err := repo.List(context.Background(), "school-1", models.TimetableEntryFilter{
		TeacherID: "t1",
		DayOfWeek: models.Monday,
		Page:      2,
		PageSize:  10,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 11, total)
	require.NotNil(t, entries[0].RoomID)
	assert.Equal(t, "r1", *entries[0].RoomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableEntryRepositoryListAllIncludesInactive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(entryRowColumns).
		AddRow("e1", "school-1", "10", "A", "MONDAY", 1, "t1", "math", nil, "INACTIVE", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, school_id, class_id")).
		WithArgs("school-1", "10").
		WillReturnRows(rows)

	entries, err := repo.ListAll(context.Background(), "school-1", models.TimetableEntryFilter{ClassID: "10", IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].RoomID)
	assert.Equal(t, models.StatusInactive, entries[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableEntryRepositoryListActiveAtSlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE school_id = $1 AND day_of_week = $2 AND period_number = $3 AND status = $4")).
		WithArgs("school-1", "TUESDAY", 3, "ACTIVE").
		WillReturnRows(sqlmock.NewRows(entryRowColumns))

	entries, err := repo.ListActiveAtSlot(context.Background(), "school-1", models.Tuesday, 3)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableEntryRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTimetableEntryRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_entries WHERE id = $1 AND school_id = $2")).
		WithArgs("missing", "school-1").
		WillReturnRows(sqlmock.NewRows(entryRowColumns))

	_, err := repo.FindByID(context.Background(), "school-1", "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
