package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type substituteRepository interface {
	Create(ctx context.Context, assignment *models.SubstituteAssignment) error
	FindByID(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error)
	FindOpenForEntry(ctx context.Context, schoolID, entryID string, date time.Time) (*models.SubstituteAssignment, error)
	Transition(ctx context.Context, schoolID, id string, from []models.SubstituteStatus, to models.SubstituteStatus, cancelReason *string) error
	CompleteElapsed(ctx context.Context, schoolID string, asOf time.Time) (int64, error)
	List(ctx context.Context, schoolID string, filter models.SubstituteFilter) ([]models.SubstituteAssignment, int, error)
}

type entryReader interface {
	FindByID(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error)
}

type substituteChecker interface {
	CheckSubstitute(ctx context.Context, schoolID string, entry models.TimetableEntry, teacher models.Teacher, date time.Time) error
}

// SubstituteService manages date scoped teacher substitutions.
type SubstituteService struct {
	repo         substituteRepository
	entries      entryReader
	teachers     teacherReader
	availability substituteChecker
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewSubstituteService constructs the substitute manager.
func NewSubstituteService(repo substituteRepository, entries entryReader, teachers teacherReader, availability substituteChecker, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SubstituteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubstituteService{
		repo:         repo,
		entries:      entries,
		teachers:     teachers,
		availability: availability,
		metrics:      metrics,
		validator:    newSchedulingValidator(validate),
		logger:       logger,
		now:          time.Now,
	}
}

// Create assigns a substitute to an active entry for one date. The assignment is
// stored CONFIRMED unless the caller asks for a separate confirmation step.
func (s *SubstituteService) Create(ctx context.Context, schoolID, createdBy string, req dto.CreateSubstituteRequest) (*models.SubstituteAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid substitute assignment payload")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.FindByID(ctx, schoolID, req.OriginalEntryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrEntryNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}
	if !entry.IsActive() {
		return nil, appErrors.ErrEntryNotFound
	}
	if models.DayOfDate(date) != entry.DayOfWeek {
		return nil, invalid("date %s is not a %s", req.Date, entry.DayOfWeek)
	}
	if req.SubstituteTeacherID == entry.TeacherID {
		return nil, invalid("substitute must differ from the original teacher")
	}

	teacher, err := s.teachers.FindByID(ctx, schoolID, req.SubstituteTeacherID)
	if err != nil {
		return nil, lookupError(err, "substitute teacher not found", "failed to load substitute teacher")
	}
	if !teacher.Active {
		return nil, invalid("substitute teacher %s is inactive", teacher.ID)
	}

	if err := s.availability.CheckSubstitute(ctx, schoolID, *entry, *teacher, date); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindOpenForEntry(ctx, schoolID, entry.ID, date); err == nil {
		return nil, appErrors.ErrDuplicateAssignment
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing assignments")
	}

	status := models.SubstituteConfirmed
	if req.RequireConfirmation {
		status = models.SubstitutePending
	}
	assignment := &models.SubstituteAssignment{
		ID:                  uuid.NewString(),
		SchoolID:            schoolID,
		OriginalEntryID:     entry.ID,
		OriginalTeacherID:   entry.TeacherID,
		SubstituteTeacherID: teacher.ID,
		AssignmentDate:      date,
		DayOfWeek:           entry.DayOfWeek,
		PeriodNumber:        entry.PeriodNumber,
		Reason:              strings.TrimSpace(req.Reason),
		Status:              status,
	}
	if createdBy != "" {
		assignment.CreatedBy = &createdBy
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		if constraint, ok := repository.UniqueViolation(err); ok && constraint == repository.ConstraintSubstituteOpen {
			return nil, appErrors.Wrap(err, appErrors.ErrDuplicateAssignment.Code, appErrors.ErrDuplicateAssignment.Status, appErrors.ErrDuplicateAssignment.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create substitute assignment")
	}

	s.metrics.RecordTransition("substitute", string(status))
	s.logger.Info("substitute assigned",
		zap.String("school_id", schoolID),
		zap.String("assignment_id", assignment.ID),
		zap.String("entry_id", entry.ID),
		zap.String("substitute_teacher_id", teacher.ID),
		zap.String("date", req.Date),
		zap.String("status", string(status)),
	)
	return assignment, nil
}

// Confirm moves a PENDING assignment to CONFIRMED.
func (s *SubstituteService) Confirm(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error) {
	return s.transition(ctx, schoolID, id, []models.SubstituteStatus{models.SubstitutePending}, models.SubstituteConfirmed, nil)
}

// Complete moves a CONFIRMED assignment whose date has arrived to COMPLETED.
func (s *SubstituteService) Complete(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error) {
	assignment, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if assignment.AssignmentDate.After(models.DateOnly(s.now())) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "assignment date has not arrived yet")
	}
	return s.transition(ctx, schoolID, id, []models.SubstituteStatus{models.SubstituteConfirmed}, models.SubstituteCompleted, nil)
}

// Cancel ends a non-terminal assignment. A second cancel fails with ALREADY_PROCESSED.
func (s *SubstituteService) Cancel(ctx context.Context, schoolID, id, reason string) (*models.SubstituteAssignment, error) {
	var cancelReason *string
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		cancelReason = &trimmed
	}
	return s.transition(ctx, schoolID, id, []models.SubstituteStatus{models.SubstitutePending, models.SubstituteConfirmed}, models.SubstituteCancelled, cancelReason)
}

func (s *SubstituteService) transition(ctx context.Context, schoolID, id string, from []models.SubstituteStatus, to models.SubstituteStatus, reason *string) (*models.SubstituteAssignment, error) {
	err := s.repo.Transition(ctx, schoolID, id, from, to, reason)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update substitute assignment")
	}
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := s.Get(ctx, schoolID, id)
		if getErr != nil {
			return nil, getErr
		}
		if to == models.SubstituteCancelled {
			return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "assignment is already "+strings.ToLower(string(current.Status)))
		}
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "assignment is "+strings.ToLower(string(current.Status)))
	}

	s.metrics.RecordTransition("substitute", string(to))
	s.logger.Info("substitute assignment transitioned",
		zap.String("school_id", schoolID),
		zap.String("assignment_id", id),
		zap.String("status", string(to)),
	)
	return s.Get(ctx, schoolID, id)
}

// CompleteElapsed completes every confirmed assignment dated before asOf. An
// empty schoolID sweeps all schools.
func (s *SubstituteService) CompleteElapsed(ctx context.Context, schoolID string, asOf time.Time) (int64, error) {
	completed, err := s.repo.CompleteElapsed(ctx, schoolID, models.DateOnly(asOf))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to complete elapsed assignments")
	}
	if completed > 0 {
		s.logger.Info("elapsed substitute assignments completed", zap.String("school_id", schoolID), zap.Int64("count", completed))
	}
	return completed, nil
}

// RunAutoComplete sweeps elapsed assignments every interval until ctx is done.
func (s *SubstituteService) RunAutoComplete(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	sweep := func() {
		if _, err := s.CompleteElapsed(ctx, "", s.now()); err != nil && ctx.Err() == nil {
			s.logger.Error("substitute auto-complete failed", zap.Error(err))
		}
	}
	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sweep()
		case <-ctx.Done():
			s.logger.Info("substitute auto-complete stopped")
			return
		}
	}
}

// Get returns one assignment.
func (s *SubstituteService) Get(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error) {
	assignment, err := s.repo.FindByID(ctx, schoolID, id)
	if err != nil {
		return nil, lookupError(err, "substitute assignment not found", "failed to load substitute assignment")
	}
	return assignment, nil
}

// List returns a page of assignments.
func (s *SubstituteService) List(ctx context.Context, schoolID string, filter models.SubstituteFilter) ([]models.SubstituteAssignment, *models.Pagination, error) {
	if filter.Status != "" {
		switch filter.Status {
		case models.SubstitutePending, models.SubstituteConfirmed, models.SubstituteCompleted, models.SubstituteCancelled:
		default:
			return nil, nil, invalid("unknown status %q", filter.Status)
		}
	}
	items, total, err := s.repo.List(ctx, schoolID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list substitute assignments")
	}
	page, size := pageBounds(filter.Page, filter.PageSize)
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

func pageBounds(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}
