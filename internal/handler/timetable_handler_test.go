package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type stubTimetableService struct {
	created    *dto.CreateEntryRequest
	createErr  error
	query      dto.EntryQuery
	schoolSeen string
}

func (s *stubTimetableService) Create(ctx context.Context, schoolID string, req dto.CreateEntryRequest) (*models.TimetableEntry, error) {
	s.schoolSeen = schoolID
	s.created = &req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.TimetableEntry{ID: "e-new", SchoolID: schoolID, TeacherID: req.TeacherID, Status: models.StatusActive}, nil
}

func (s *stubTimetableService) Update(ctx context.Context, schoolID, id string, req dto.UpdateEntryRequest) (*models.TimetableEntry, error) {
	return &models.TimetableEntry{ID: id, SchoolID: schoolID}, nil
}

func (s *stubTimetableService) Deactivate(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error) {
	return &models.TimetableEntry{ID: id, SchoolID: schoolID, Status: models.StatusInactive}, nil
}

func (s *stubTimetableService) Get(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error) {
	if id == "missing" {
		return nil, appErrors.ErrEntryNotFound
	}
	return &models.TimetableEntry{ID: id, SchoolID: schoolID}, nil
}

func (s *stubTimetableService) List(ctx context.Context, schoolID string, query dto.EntryQuery) ([]models.TimetableEntry, *models.Pagination, error) {
	s.query = query
	return []models.TimetableEntry{{ID: "e1"}}, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, nil
}

func (s *stubTimetableService) ListByTeacher(ctx context.Context, schoolID, teacherID string) ([]models.TimetableEntry, error) {
	return []models.TimetableEntry{{ID: "e1", TeacherID: teacherID}}, nil
}

func (s *stubTimetableService) ListByRoom(ctx context.Context, schoolID, roomID string) ([]models.TimetableEntry, error) {
	return []models.TimetableEntry{}, nil
}

func (s *stubTimetableService) ListByDay(ctx context.Context, schoolID, day string) ([]models.TimetableEntry, error) {
	return []models.TimetableEntry{}, nil
}

func (s *stubTimetableService) ClassGrid(ctx context.Context, schoolID, classID, sectionID string) (*models.ClassGrid, error) {
	return nil, appErrors.ErrNoActiveCalendar
}

type stubConflictScanner struct {
	rescanned bool
}

func (s *stubConflictScanner) Scan(ctx context.Context, schoolID string) (*models.ConflictReport, error) {
	return &models.ConflictReport{SchoolID: schoolID, Conflicts: []models.Conflict{}, FromCache: true}, nil
}

func (s *stubConflictScanner) Rescan(ctx context.Context, schoolID string) (*models.ConflictReport, error) {
	s.rescanned = true
	return &models.ConflictReport{SchoolID: schoolID, Conflicts: []models.Conflict{}}, nil
}

type stubSummaryReader struct{}

func (stubSummaryReader) Get(ctx context.Context, schoolID string) (*models.ScheduleSummary, error) {
	return &models.ScheduleSummary{SchoolID: schoolID, ActiveEntries: 3}, nil
}

func newTimetableHandler() (*TimetableHandler, *stubTimetableService, *stubConflictScanner) {
	svc := &stubTimetableService{}
	scanner := &stubConflictScanner{}
	return NewTimetableHandler(svc, scanner, stubSummaryReader{}), svc, scanner
}

func TestTimetableHandlerCreate(t *testing.T) {
	h, svc, _ := newTimetableHandler()
	router := newTestRouter(http.MethodPost, "/entries", adminClaims(), h.Create)

	payload := map[string]interface{}{
		"class_id": "10", "section_id": "A", "teacher_id": "t1", "subject_id": "math",
		"day_of_week": "MONDAY", "period_number": 1,
	}
	rec, env := perform(t, router, http.MethodPost, "/entries", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "school-1", svc.schoolSeen)
	assert.Equal(t, "t1", svc.created.TeacherID)

	var entry models.TimetableEntry
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, "e-new", entry.ID)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestTimetableHandlerCreateConflict(t *testing.T) {
	h, svc, _ := newTimetableHandler()
	svc.createErr = appErrors.WithDetails(appErrors.ErrSchedulingConflict, map[string]interface{}{
		"conflicting_entries": []string{"e1"},
	})
	router := newTestRouter(http.MethodPost, "/entries", adminClaims(), h.Create)

	rec, env := perform(t, router, http.MethodPost, "/entries", map[string]interface{}{"class_id": "10"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SCHEDULING_CONFLICT", env.Error.Code)
	assert.Equal(t, []interface{}{"e1"}, env.Error.Details["conflicting_entries"])
}

func TestTimetableHandlerRequiresTenantClaims(t *testing.T) {
	h, _, _ := newTimetableHandler()
	router := newTestRouter(http.MethodGet, "/entries/:id", nil, h.Get)

	rec, env := perform(t, router, http.MethodGet, "/entries/e1", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, env.Error.Code)
}

func TestTimetableHandlerGetNotFound(t *testing.T) {
	h, _, _ := newTimetableHandler()
	router := newTestRouter(http.MethodGet, "/entries/:id", teacherClaims(), h.Get)

	rec, env := perform(t, router, http.MethodGet, "/entries/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ENTRY_NOT_FOUND", env.Error.Code)
}

func TestTimetableHandlerListBindsQuery(t *testing.T) {
	h, svc, _ := newTimetableHandler()
	router := newTestRouter(http.MethodGet, "/entries", teacherClaims(), h.List)

	rec, env := perform(t, router, http.MethodGet, "/entries?teacher_id=t1&day=monday&page=2&include_inactive=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t1", svc.query.TeacherID)
	assert.Equal(t, "monday", svc.query.DayOfWeek)
	assert.Equal(t, 2, svc.query.Page)
	assert.True(t, svc.query.IncludeInactive)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalCount)

	rec, _ = perform(t, router, http.MethodGet, "/entries?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableHandlerClassGridWithoutCalendar(t *testing.T) {
	h, _, _ := newTimetableHandler()
	router := newTestRouter(http.MethodGet, "/classes/:classId/sections/:sectionId/grid", teacherClaims(), h.ClassGrid)

	rec, _ := perform(t, router, http.MethodGet, "/classes/10/sections/A/grid", nil)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestTimetableHandlerConflictsReportsCacheHit(t *testing.T) {
	h, _, scanner := newTimetableHandler()
	router := newTestRouter(http.MethodGet, "/conflicts", adminClaims(), h.Conflicts)

	rec, env := perform(t, router, http.MethodGet, "/conflicts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Contains(t, env.Meta, "processing_time_ms")
	assert.False(t, scanner.rescanned)

	rec, env = perform(t, router, http.MethodGet, "/conflicts?refresh=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, env.Meta["cache_hit"])
	assert.True(t, scanner.rescanned)
}

func TestTimetableHandlerSummary(t *testing.T) {
	h, _, _ := newTimetableHandler()
	router := newTestRouter(http.MethodGet, "/summary", adminClaims(), h.Summary)

	rec, env := perform(t, router, http.MethodGet, "/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.ScheduleSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 3, summary.ActiveEntries)
}
