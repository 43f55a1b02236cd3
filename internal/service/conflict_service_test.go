package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// writeDuringScanRepo lets a concurrent write land while a scan is reading entries.
type writeDuringScanRepo struct {
	*memEntryRepo
	duringList func()
}

func (r *writeDuringScanRepo) ListAll(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, error) {
	entries, err := r.memEntryRepo.ListAll(ctx, schoolID, filter)
	if r.duringList != nil {
		r.duringList()
	}
	return entries, err
}

func TestConflictServiceCachesReportWithOwnTTL(t *testing.T) {
	store := newMemCache()
	cache := NewCacheService(store, nil, 10*time.Minute, nil, true)
	repo := newMemEntryRepo(activeEntry("e1", "t1", "10", "A", models.Monday, 1, nil))
	svc := NewConflictService(repo, cache, nil, 45*time.Second, zap.NewNop())

	report, err := svc.Scan(context.Background(), "school-1")
	require.NoError(t, err)
	assert.False(t, report.FromCache)
	assert.Equal(t, 45*time.Second, store.ttls[ConflictCacheKey("school-1")])

	report, err = svc.Scan(context.Background(), "school-1")
	require.NoError(t, err)
	assert.True(t, report.FromCache)

	// A forced double booking shows up once the caller asks for a rescan.
	repo.forceInsert(activeEntry("e2", "t1", "11", "A", models.Monday, 1, nil))
	report, err = svc.Rescan(context.Background(), "school-1")
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.ElementsMatch(t, []string{"e1", "e2"}, report.Conflicts[0].Entries)
}

func TestConflictServiceSkipsCacheWhenWriteOvertakesScan(t *testing.T) {
	store := newMemCache()
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	repo := &writeDuringScanRepo{memEntryRepo: newMemEntryRepo()}
	svc := NewConflictService(repo, cache, nil, time.Minute, zap.NewNop())
	repo.duringList = func() { svc.Invalidate(context.Background(), "school-1") }

	_, err := svc.Rescan(context.Background(), "school-1")
	require.NoError(t, err)
	_, cached := store.items[ConflictCacheKey("school-1")]
	assert.False(t, cached)

	repo.duringList = nil
	_, err = svc.Rescan(context.Background(), "school-1")
	require.NoError(t, err)
	_, cached = store.items[ConflictCacheKey("school-1")]
	assert.True(t, cached)
}

func TestConflictServiceLogsCacheWriteFailure(t *testing.T) {
	store := newMemCache()
	store.setErr = errors.New("redis down")
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewConflictService(newMemEntryRepo(), cache, nil, time.Minute, zap.New(core))

	report, err := svc.Rescan(context.Background(), "school-1")
	require.NoError(t, err)
	assert.NotNil(t, report)

	entries := logs.FilterMessage("failed to cache conflict report").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "school-1", entries[0].ContextMap()["school_id"])
}
