package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type memSwapRepo struct {
	items     map[string]models.PeriodSwapRequest
	createErr error
}

func newMemSwapRepo() *memSwapRepo {
	return &memSwapRepo{items: make(map[string]models.PeriodSwapRequest)}
}

func (m *memSwapRepo) Create(ctx context.Context, swap *models.PeriodSwapRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.items[swap.ID] = *swap
	return nil
}

func (m *memSwapRepo) FindByID(ctx context.Context, schoolID, id string) (*models.PeriodSwapRequest, error) {
	swap, ok := m.items[id]
	if !ok || swap.SchoolID != schoolID {
		return nil, sql.ErrNoRows
	}
	return &swap, nil
}

func (m *memSwapRepo) ExistsPending(ctx context.Context, schoolID, a, b string, date time.Time) (bool, error) {
	for _, swap := range m.items {
		if swap.SchoolID != schoolID || swap.Status != models.SwapPending || !swap.SwapDate.Equal(date) {
			continue
		}
		if (swap.EntryID1 == a && swap.EntryID2 == b) || (swap.EntryID1 == b && swap.EntryID2 == a) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSwapRepo) Decide(ctx context.Context, schoolID, id string, to models.SwapStatus, decidedBy string, rejectReason *string) error {
	swap, ok := m.items[id]
	if !ok || swap.SchoolID != schoolID || swap.Status != models.SwapPending {
		return sql.ErrNoRows
	}
	now := time.Now().UTC()
	swap.Status = to
	swap.DecidedBy = &decidedBy
	swap.DecidedAt = &now
	swap.RejectReason = rejectReason
	m.items[id] = swap
	return nil
}

func (m *memSwapRepo) List(ctx context.Context, schoolID string, filter models.SwapFilter) ([]models.PeriodSwapRequest, int, error) {
	var out []models.PeriodSwapRequest
	for _, swap := range m.items {
		if swap.SchoolID == schoolID && (filter.Status == "" || swap.Status == filter.Status) {
			out = append(out, swap)
		}
	}
	return out, len(out), nil
}

func newSwapService() (*PeriodSwapService, *memSwapRepo, *memEntryRepo) {
	entries := newMemEntryRepo(
		activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil),
		activeEntry("e2", "t2", "10", "A", models.Monday, 2, nil),
	)
	repo := newMemSwapRepo()
	return NewPeriodSwapService(repo, entries, NewMetricsService(), nil, nil), repo, entries
}

func swapRequest(a, b string) dto.CreateSwapRequest {
	return dto.CreateSwapRequest{EntryID1: a, EntryID2: b, Date: "2026-10-19", Reason: "field trip"}
}

func TestPeriodSwapServiceRequestIsUniqueWhilePending(t *testing.T) {
	svc, _, _ := newSwapService()

	first, err := svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e2"))
	require.NoError(t, err)
	assert.Equal(t, models.SwapPending, first.Status)

	_, err = svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrDuplicateSwapRequest))

	_, err = svc.Request(context.Background(), "school-1", "t2", swapRequest("e2", "e1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrDuplicateSwapRequest))

	_, err = svc.Reject(context.Background(), "school-1", first.ID, "admin", "no")
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e2"))
	require.NoError(t, err)
}

func TestPeriodSwapServiceRequestMapsRacingDuplicate(t *testing.T) {
	svc, repo, _ := newSwapService()
	repo.createErr = &pq.Error{Code: "23505", Constraint: repository.ConstraintSwapPending}

	_, err := svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrDuplicateSwapRequest))
}

func TestPeriodSwapServiceRequestValidation(t *testing.T) {
	svc, _, entries := newSwapService()
	inactive := activeEntry("e3", "t3", "11", "A", models.Monday, 3, nil)
	inactive.Status = models.StatusInactive
	entries.forceInsert(inactive)

	_, err := svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrEntryNotFound))

	_, err = svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrEntryNotFound))
}

func TestPeriodSwapServiceApproveLeavesEntriesUntouched(t *testing.T) {
	svc, _, entries := newSwapService()

	swap, err := svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e2"))
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), "school-1", swap.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.SwapApproved, approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, "admin", *approved.DecidedBy)

	e1, err := entries.FindByID(context.Background(), "school-1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "t1", e1.TeacherID)
	assert.Equal(t, 1, e1.PeriodNumber)

	_, err = svc.Reject(context.Background(), "school-1", swap.ID, "admin", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidState))
}

func TestPeriodSwapServiceCancelPermissions(t *testing.T) {
	svc, _, _ := newSwapService()

	swap, err := svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e2"))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "school-1", swap.ID, "t2", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	cancelled, err := svc.Cancel(context.Background(), "school-1", swap.ID, "t1", false)
	require.NoError(t, err)
	assert.Equal(t, models.SwapCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), "school-1", swap.ID, "admin", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidState))
}

func TestPeriodSwapServiceRejectStoresReason(t *testing.T) {
	svc, _, _ := newSwapService()

	swap, err := svc.Request(context.Background(), "school-1", "t1", swapRequest("e1", "e2"))
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), "school-1", swap.ID, "admin", "  exam week ")
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectReason)
	assert.Equal(t, "exam week", *rejected.RejectReason)
}

func TestPeriodSwapServiceGetUnknown(t *testing.T) {
	svc, _, _ := newSwapService()

	_, err := svc.Approve(context.Background(), "school-1", "missing", "admin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
