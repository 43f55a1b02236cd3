package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type memSubstituteRepo struct {
	mu    sync.Mutex
	items map[string]models.SubstituteAssignment
	swept time.Time
}

func newMemSubstituteRepo() *memSubstituteRepo {
	return &memSubstituteRepo{items: make(map[string]models.SubstituteAssignment)}
}

func (m *memSubstituteRepo) Create(ctx context.Context, a *models.SubstituteAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = *a
	return nil
}

func (m *memSubstituteRepo) FindByID(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok || a.SchoolID != schoolID {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (m *memSubstituteRepo) FindOpenForEntry(ctx context.Context, schoolID, entryID string, date time.Time) (*models.SubstituteAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.SchoolID == schoolID && a.OriginalEntryID == entryID && a.AssignmentDate.Equal(date) && a.Status.Open() {
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memSubstituteRepo) Transition(ctx context.Context, schoolID, id string, from []models.SubstituteStatus, to models.SubstituteStatus, cancelReason *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok || a.SchoolID != schoolID {
		return sql.ErrNoRows
	}
	for _, status := range from {
		if a.Status == status {
			a.Status = to
			a.CancelReason = cancelReason
			m.items[id] = a
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memSubstituteRepo) CompleteElapsed(ctx context.Context, schoolID string, asOf time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swept = asOf
	var n int64
	for id, a := range m.items {
		if a.Status == models.SubstituteConfirmed && a.AssignmentDate.Before(asOf) && (schoolID == "" || a.SchoolID == schoolID) {
			a.Status = models.SubstituteCompleted
			m.items[id] = a
			n++
		}
	}
	return n, nil
}

func (m *memSubstituteRepo) List(ctx context.Context, schoolID string, filter models.SubstituteFilter) ([]models.SubstituteAssignment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SubstituteAssignment
	for _, a := range m.items {
		if a.SchoolID == schoolID && (filter.Status == "" || a.Status == filter.Status) {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *memSubstituteRepo) ListOpenAtSlot(ctx context.Context, schoolID string, date time.Time, period int) ([]models.SubstituteAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SubstituteAssignment
	for _, a := range m.items {
		if a.SchoolID == schoolID && a.AssignmentDate.Equal(date) && a.PeriodNumber == period && a.Status.Open() {
			out = append(out, a)
		}
	}
	return out, nil
}

type substituteFixture struct {
	repo    *memSubstituteRepo
	avail   *availabilityFixture
	metrics *MetricsService
	service *SubstituteService
}

func newSubstituteFixture(entries ...models.TimetableEntry) *substituteFixture {
	repo := newMemSubstituteRepo()
	avail := newAvailabilityFixture(entries...)
	avail.service.substitutes = repo
	metrics := NewMetricsService()
	svc := NewSubstituteService(repo, avail.entries, avail.teachers, avail.service, metrics, validator.New(), nil)
	svc.now = func() time.Time { return mondayDate.Add(10 * time.Hour) }
	return &substituteFixture{repo: repo, avail: avail, metrics: metrics, service: svc}
}

func substituteRequest(entryID, teacherID string) dto.CreateSubstituteRequest {
	return dto.CreateSubstituteRequest{
		OriginalEntryID:     entryID,
		SubstituteTeacherID: teacherID,
		Date:                "2026-10-19",
		Reason:              " sick leave ",
	}
}

func TestSubstituteServiceCreate(t *testing.T) {
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))

	assignment, err := f.service.Create(context.Background(), "school-1", "admin-1", substituteRequest("e1", "t2"))
	require.NoError(t, err)
	assert.Equal(t, models.SubstituteConfirmed, assignment.Status)
	assert.Equal(t, "t1", assignment.OriginalTeacherID)
	assert.Equal(t, 1, assignment.PeriodNumber)
	assert.Equal(t, "sick leave", assignment.Reason)
	assert.True(t, assignment.AssignmentDate.Equal(mondayDate))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.transitions.WithLabelValues("substitute", "CONFIRMED")))
}

func TestSubstituteServiceCreatePendingWhenConfirmationRequired(t *testing.T) {
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))
	req := substituteRequest("e1", "t2")
	req.RequireConfirmation = true

	assignment, err := f.service.Create(context.Background(), "school-1", "", req)
	require.NoError(t, err)
	assert.Equal(t, models.SubstitutePending, assignment.Status)

	confirmed, err := f.service.Confirm(context.Background(), "school-1", assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubstituteConfirmed, confirmed.Status)

	_, err = f.service.Confirm(context.Background(), "school-1", assignment.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidState))
}

func TestSubstituteServiceRejectsBusyTeacher(t *testing.T) {
	f := newSubstituteFixture(
		activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil),
		activeEntry("e2", "t2", "11", "A", models.Monday, 1, nil),
	)

	_, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSubstituteBusy))
}

func TestSubstituteServiceRejectsDoubleSubstitution(t *testing.T) {
	f := newSubstituteFixture(
		activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil),
		activeEntry("e2", "t4", "11", "A", models.Monday, 1, nil),
	)

	_, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t3"))
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), "school-1", "", substituteRequest("e2", "t3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSubstituteBusy))
}

func TestSubstituteServiceRejectsTeacherWhoseLessonIsCovered(t *testing.T) {
	f := newSubstituteFixture(
		activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil),
		activeEntry("e2", "t2", "11", "A", models.Monday, 1, nil),
	)

	cover, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e2", "t3"))
	require.NoError(t, err)

	// t2 still holds e2 at MONDAY period 1 while t3 covers it.
	_, err = f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSubstituteBusy))

	_, err = f.service.Cancel(context.Background(), "school-1", cover.ID, "")
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSubstituteBusy))

	suggestion, err := f.avail.service.SuggestSubstitutes(context.Background(), "school-1", "e1", mondayDate)
	require.NoError(t, err)
	assert.NotContains(t, teacherIDs(suggestion.Teachers), "t2")
}

func TestSubstituteServiceRejectsIneligibleTeacher(t *testing.T) {
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))

	_, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t4"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSubstituteIneligible))
}

func TestSubstituteServiceRejectsDuplicateAssignment(t *testing.T) {
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))

	_, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t2"))
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrDuplicateAssignment))
}

func TestSubstituteServiceCreateValidation(t *testing.T) {
	inactive := activeEntry("old", "t1", "12", "A", models.Monday, 2, nil)
	inactive.Status = models.StatusInactive
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil), inactive)

	cases := []struct {
		name string
		req  dto.CreateSubstituteRequest
		err  *appErrors.Error
	}{
		{name: "wrong weekday", req: func() dto.CreateSubstituteRequest {
			r := substituteRequest("e1", "t2")
			r.Date = "2026-10-20"
			return r
		}(), err: appErrors.ErrValidation},
		{name: "bad date", req: func() dto.CreateSubstituteRequest {
			r := substituteRequest("e1", "t2")
			r.Date = "19/10/2026"
			return r
		}(), err: appErrors.ErrValidation},
		{name: "same teacher", req: substituteRequest("e1", "t1"), err: appErrors.ErrValidation},
		{name: "inactive teacher", req: substituteRequest("e1", "t5"), err: appErrors.ErrValidation},
		{name: "unknown teacher", req: substituteRequest("e1", "ghost"), err: appErrors.ErrNotFound},
		{name: "unknown entry", req: substituteRequest("missing", "t2"), err: appErrors.ErrEntryNotFound},
		{name: "inactive entry", req: substituteRequest("old", "t2"), err: appErrors.ErrEntryNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), "school-1", "", tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}
}

func TestSubstituteServiceCancelTwice(t *testing.T) {
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))

	assignment, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t2"))
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(context.Background(), "school-1", assignment.ID, "  teacher returned ")
	require.NoError(t, err)
	assert.Equal(t, models.SubstituteCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "teacher returned", *cancelled.CancelReason)

	_, err = f.service.Cancel(context.Background(), "school-1", assignment.ID, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrAlreadyProcessed))

	// The slot is open again once the assignment is cancelled.
	_, err = f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t3"))
	require.NoError(t, err)
}

func TestSubstituteServiceCompleteRequiresArrivedDate(t *testing.T) {
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))

	assignment, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t2"))
	require.NoError(t, err)

	f.service.now = func() time.Time { return mondayDate.AddDate(0, 0, -1) }
	_, err = f.service.Complete(context.Background(), "school-1", assignment.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidState))

	f.service.now = func() time.Time { return mondayDate.Add(9 * time.Hour) }
	completed, err := f.service.Complete(context.Background(), "school-1", assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubstituteCompleted, completed.Status)

	_, err = f.service.Cancel(context.Background(), "school-1", assignment.ID, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrAlreadyProcessed))
}

func TestSubstituteServiceCompleteElapsed(t *testing.T) {
	f := newSubstituteFixture(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))

	assignment, err := f.service.Create(context.Background(), "school-1", "", substituteRequest("e1", "t2"))
	require.NoError(t, err)

	n, err := f.service.CompleteElapsed(context.Background(), "", mondayDate.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.service.CompleteElapsed(context.Background(), "", mondayDate.AddDate(0, 0, 1).Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, f.repo.swept.Equal(mondayDate.AddDate(0, 0, 1)))

	stored, err := f.service.Get(context.Background(), "school-1", assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubstituteCompleted, stored.Status)
}

func TestSubstituteServiceRunAutoCompleteStopsWithContext(t *testing.T) {
	f := newSubstituteFixture()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.service.RunAutoComplete(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("auto-complete did not stop")
	}
}

func TestSubstituteServiceListRejectsUnknownStatus(t *testing.T) {
	f := newSubstituteFixture()

	_, _, err := f.service.List(context.Background(), "school-1", models.SubstituteFilter{Status: "LOST"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
