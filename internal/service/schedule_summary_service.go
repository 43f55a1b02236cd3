package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
	"github.com/noah-isme/sma-timetable-api/pkg/jobs"
)

// JobTypeSummaryRefresh identifies summary recomputation jobs.
const JobTypeSummaryRefresh = "schedule_summary_refresh"

type summaryEntryLister interface {
	ListAll(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, error)
}

type summaryDispatcher interface {
	TryEnqueue(job jobs.Job) error
}

// SummaryWorker recomputes schedule summaries and stores them in the cache.
type SummaryWorker struct {
	entries summaryEntryLister
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewSummaryWorker constructs the worker used by the summary queue.
func NewSummaryWorker(entries summaryEntryLister, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *SummaryWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryWorker{entries: entries, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// Handle processes a queue job whose key is the school id.
func (w *SummaryWorker) Handle(ctx context.Context, job jobs.Job) error {
	if job.Key == "" {
		return errors.New("summary job without school id")
	}
	_, err := w.Refresh(ctx, job.Key)
	return err
}

// Refresh computes the summary of a school and caches it.
func (w *SummaryWorker) Refresh(ctx context.Context, schoolID string) (*models.ScheduleSummary, error) {
	start := time.Now()
	entries, err := w.entries.ListAll(ctx, schoolID, models.TimetableEntryFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entries")
	}
	summary := summarize(schoolID, entries)
	summary.GeneratedAt = w.now().UTC()
	w.metrics.ObserveSummaryRefresh(time.Since(start))

	if err := w.cache.Set(ctx, SummaryCacheKey(schoolID), summary, 0); err != nil {
		w.logger.Warn("failed to cache schedule summary", zap.String("school_id", schoolID), zap.Error(err))
	}
	w.logger.Debug("schedule summary refreshed",
		zap.String("school_id", schoolID),
		zap.Int("active_entries", summary.ActiveEntries),
		zap.Int("conflicts", summary.ConflictCount),
	)
	return summary, nil
}

func summarize(schoolID string, entries []models.TimetableEntry) *models.ScheduleSummary {
	summary := &models.ScheduleSummary{
		SchoolID:     schoolID,
		TeacherLoads: map[string]int{},
		RoomLoads:    map[string]int{},
		ClassLoads:   map[string]int{},
	}
	active := make([]models.TimetableEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsActive() {
			continue
		}
		active = append(active, entry)
		summary.TeacherLoads[entry.TeacherID]++
		if entry.RoomID != nil && *entry.RoomID != "" {
			summary.RoomLoads[*entry.RoomID]++
		}
		summary.ClassLoads[entry.ClassID+"/"+entry.SectionID]++
	}
	summary.ActiveEntries = len(active)
	summary.ConflictCount = len(detectConflicts(active))
	return summary
}

// ScheduleSummaryService serves cached per-school load summaries that are
// rebuilt in the background after timetable writes.
type ScheduleSummaryService struct {
	worker *SummaryWorker
	cache  *CacheService
	queue  summaryDispatcher
	logger *zap.Logger
}

// NewScheduleSummaryService wires the summary cache to its refresh queue. queue may be nil,
// in which case summaries are only computed on demand.
func NewScheduleSummaryService(worker *SummaryWorker, cache *CacheService, queue summaryDispatcher, logger *zap.Logger) *ScheduleSummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleSummaryService{worker: worker, cache: cache, queue: queue, logger: logger}
}

// Get returns the cached summary or computes it when none is stored.
func (s *ScheduleSummaryService) Get(ctx context.Context, schoolID string) (*models.ScheduleSummary, error) {
	var cached models.ScheduleSummary
	if hit, _ := s.cache.Get(ctx, SummaryCacheKey(schoolID), &cached); hit {
		return &cached, nil
	}
	return s.worker.Refresh(ctx, schoolID)
}

// RequestRefresh schedules a recomputation. Requests for a school already
// waiting in the queue are coalesced; a full queue only logs.
func (s *ScheduleSummaryService) RequestRefresh(schoolID string) {
	if s == nil || s.queue == nil {
		return
	}
	err := s.queue.TryEnqueue(jobs.Job{Type: JobTypeSummaryRefresh, Key: schoolID})
	if err != nil {
		s.logger.Warn("failed to enqueue summary refresh", zap.String("school_id", schoolID), zap.Error(err))
	}
}
