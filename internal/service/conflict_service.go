package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type conflictEntryRepository interface {
	ListAll(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, error)
	ListActiveAtSlot(ctx context.Context, schoolID, day string, period int) ([]models.TimetableEntry, error)
}

// ConflictService reports double bookings and guards writes against them.
// Cached reports live at most reportTTL, which bounds how long a row written
// outside this service can stay hidden from Scan.
type ConflictService struct {
	entries   conflictEntryRepository
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	reportTTL time.Duration
	// generation moves on every Invalidate so a scan overtaken by a write is not cached.
	generation atomic.Uint64
	now        func() time.Time
}

// NewConflictService constructs the detector service. cache and metrics may be nil.
// A zero reportTTL falls back to the cache default.
func NewConflictService(entries conflictEntryRepository, cache *CacheService, metrics *MetricsService, reportTTL time.Duration, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{entries: entries, cache: cache, metrics: metrics, reportTTL: reportTTL, logger: logger, now: time.Now}
}

// Scan recomputes every conflict among the school's active entries.
func (s *ConflictService) Scan(ctx context.Context, schoolID string) (*models.ConflictReport, error) {
	var cached models.ConflictReport
	if hit, _ := s.cache.Get(ctx, ConflictCacheKey(schoolID), &cached); hit {
		cached.FromCache = true
		return &cached, nil
	}

	return s.Rescan(ctx, schoolID)
}

// Rescan bypasses the cached report and stores the fresh result.
func (s *ConflictService) Rescan(ctx context.Context, schoolID string) (*models.ConflictReport, error) {
	generation := s.generation.Load()
	report, err := s.scan(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if s.generation.Load() != generation {
		s.logger.Debug("skipping cache of conflict report overtaken by a write", zap.String("school_id", schoolID))
		return report, nil
	}
	if err := s.cache.Set(ctx, ConflictCacheKey(schoolID), report, s.reportTTL); err != nil {
		s.logger.Warn("failed to cache conflict report", zap.String("school_id", schoolID), zap.Error(err))
	}
	return report, nil
}

func (s *ConflictService) scan(ctx context.Context, schoolID string) (*models.ConflictReport, error) {
	entries, err := s.entries.ListAll(ctx, schoolID, models.TimetableEntryFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entries")
	}
	conflicts := detectConflicts(entries)
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	s.metrics.SetConflictsDetected(countByType(conflicts))
	if len(conflicts) > 0 {
		s.logger.Warn("timetable conflicts detected", zap.String("school_id", schoolID), zap.Int("count", len(conflicts)))
	}
	return &models.ConflictReport{
		SchoolID:   schoolID,
		Conflicts:  conflicts,
		ScannedAt:  s.now().UTC(),
		EntryCount: len(entries),
	}, nil
}

// Check returns SCHEDULING_CONFLICT when placing candidate would double-book its
// teacher, room or class section. The candidate's own stored row is ignored.
func (s *ConflictService) Check(ctx context.Context, candidate models.TimetableEntry) error {
	occupants, err := s.entries.ListActiveAtSlot(ctx, candidate.SchoolID, candidate.DayOfWeek, candidate.PeriodNumber)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot occupancy")
	}
	conflicts := slotConflicts(candidate, occupants)
	if len(conflicts) == 0 {
		s.metrics.RecordConflictCheck("clear")
		return nil
	}
	s.metrics.RecordConflictCheck("conflict")
	return newSchedulingConflict(candidate.ID, conflicts)
}

// Invalidate drops the cached report of a school after its entries changed.
func (s *ConflictService) Invalidate(ctx context.Context, schoolID string) {
	s.generation.Add(1)
	if err := s.cache.Delete(ctx, ConflictCacheKey(schoolID)); err != nil {
		s.logger.Warn("failed to invalidate conflict report", zap.String("school_id", schoolID), zap.Error(err))
	}
}
