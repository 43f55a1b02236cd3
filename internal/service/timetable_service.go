package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type timetableEntryRepository interface {
	Create(ctx context.Context, entry *models.TimetableEntry) error
	Update(ctx context.Context, entry *models.TimetableEntry) error
	Deactivate(ctx context.Context, schoolID, id string) error
	FindByID(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error)
	List(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, int, error)
	ListAll(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, error)
}

type activeCalendarReader interface {
	FindActive(ctx context.Context, schoolID string) (*models.CalendarConfig, error)
}

type roomReader interface {
	FindByID(ctx context.Context, schoolID, id string) (*models.Room, error)
}

type teacherReader interface {
	FindByID(ctx context.Context, schoolID, id string) (*models.Teacher, error)
}

type subjectReader interface {
	FindByID(ctx context.Context, schoolID, id string) (*models.Subject, error)
}

type classSectionReader interface {
	Find(ctx context.Context, schoolID, classID, sectionID string) (*models.ClassSection, error)
}

type slotGuard interface {
	Check(ctx context.Context, candidate models.TimetableEntry) error
	Invalidate(ctx context.Context, schoolID string)
}

type summaryRefresher interface {
	RequestRefresh(schoolID string)
}

// TimetableService owns timetable entries and keeps them free of double bookings.
type TimetableService struct {
	repo      timetableEntryRepository
	calendars activeCalendarReader
	rooms     roomReader
	teachers  teacherReader
	subjects  subjectReader
	sections  classSectionReader
	guard     slotGuard
	summary   summaryRefresher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService wires the entry store. subjects, sections, summary and metrics may be nil.
func NewTimetableService(
	repo timetableEntryRepository,
	calendars activeCalendarReader,
	rooms roomReader,
	teachers teacherReader,
	subjects subjectReader,
	sections classSectionReader,
	guard slotGuard,
	summary summaryRefresher,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		repo:      repo,
		calendars: calendars,
		rooms:     rooms,
		teachers:  teachers,
		subjects:  subjects,
		sections:  sections,
		guard:     guard,
		summary:   summary,
		metrics:   metrics,
		validator: newSchedulingValidator(validate),
		logger:    logger,
	}
}

// Create places a new active entry after validating the slot against the active
// calendar and checking for double bookings.
func (s *TimetableService) Create(ctx context.Context, schoolID string, req dto.CreateEntryRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid timetable entry payload")
	}
	day, _ := models.NormalizeDay(req.DayOfWeek)

	entry := &models.TimetableEntry{
		ID:           uuid.NewString(),
		SchoolID:     schoolID,
		ClassID:      strings.TrimSpace(req.ClassID),
		SectionID:    strings.TrimSpace(req.SectionID),
		DayOfWeek:    day,
		PeriodNumber: req.PeriodNumber,
		TeacherID:    strings.TrimSpace(req.TeacherID),
		SubjectID:    strings.TrimSpace(req.SubjectID),
		RoomID:       req.RoomID,
		Status:       models.StatusActive,
	}

	if err := s.validateSlot(ctx, schoolID, entry.DayOfWeek, entry.PeriodNumber); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, entry, nil); err != nil {
		return nil, err
	}
	if err := s.guard.Check(ctx, *entry); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, s.mapWriteError(ctx, *entry, err, "failed to create timetable entry")
	}

	s.logger.Info("timetable entry created",
		zap.String("school_id", schoolID),
		zap.String("entry_id", entry.ID),
		zap.String("day_of_week", entry.DayOfWeek),
		zap.Int("period_number", entry.PeriodNumber),
	)
	s.afterWrite(ctx, schoolID)
	return entry, nil
}

// Update changes an active entry. The new teacher, room and slot are checked
// against every other active entry; the entry's own row never counts.
func (s *TimetableService) Update(ctx context.Context, schoolID, id string, req dto.UpdateEntryRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid timetable entry payload")
	}
	current, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "inactive entries cannot be modified")
	}

	updated := *current
	if req.ClassID != nil {
		updated.ClassID = strings.TrimSpace(*req.ClassID)
	}
	if req.SectionID != nil {
		updated.SectionID = strings.TrimSpace(*req.SectionID)
	}
	if req.TeacherID != nil {
		updated.TeacherID = strings.TrimSpace(*req.TeacherID)
	}
	if req.SubjectID != nil {
		updated.SubjectID = strings.TrimSpace(*req.SubjectID)
	}
	if req.DayOfWeek != nil {
		updated.DayOfWeek, _ = models.NormalizeDay(*req.DayOfWeek)
	}
	if req.PeriodNumber != nil {
		updated.PeriodNumber = *req.PeriodNumber
	}
	if req.ClearRoom {
		updated.RoomID = nil
	} else if req.RoomID != nil {
		updated.RoomID = req.RoomID
	}

	if updated.DayOfWeek != current.DayOfWeek || updated.PeriodNumber != current.PeriodNumber {
		if err := s.validateSlot(ctx, schoolID, updated.DayOfWeek, updated.PeriodNumber); err != nil {
			return nil, err
		}
	}
	if err := s.validateReferences(ctx, &updated, current); err != nil {
		return nil, err
	}
	if err := s.guard.Check(ctx, updated); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "entry was deactivated concurrently")
		}
		return nil, s.mapWriteError(ctx, updated, err, "failed to update timetable entry")
	}

	s.logger.Info("timetable entry updated", zap.String("school_id", schoolID), zap.String("entry_id", id))
	s.afterWrite(ctx, schoolID)
	return &updated, nil
}

// Deactivate removes an entry from its slot. Deactivating an inactive entry is a no-op.
func (s *TimetableService) Deactivate(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error) {
	entry, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if !entry.IsActive() {
		return entry, nil
	}
	if err := s.repo.Deactivate(ctx, schoolID, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate timetable entry")
	}
	entry.Status = models.StatusInactive
	s.logger.Info("timetable entry deactivated", zap.String("school_id", schoolID), zap.String("entry_id", id))
	s.afterWrite(ctx, schoolID)
	return entry, nil
}

// Get returns an entry regardless of status.
func (s *TimetableService) Get(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error) {
	entry, err := s.repo.FindByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrEntryNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}
	return entry, nil
}

// List returns a page of entries. Only active entries are returned unless requested.
func (s *TimetableService) List(ctx context.Context, schoolID string, query dto.EntryQuery) ([]models.TimetableEntry, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, validationError(err, "invalid timetable query")
	}
	day := ""
	if query.DayOfWeek != "" {
		day, _ = models.NormalizeDay(query.DayOfWeek)
	}
	filter := models.TimetableEntryFilter{
		ClassID:         query.ClassID,
		SectionID:       query.SectionID,
		TeacherID:       query.TeacherID,
		RoomID:          query.RoomID,
		DayOfWeek:       day,
		IncludeInactive: query.IncludeInactive,
		Page:            query.Page,
		PageSize:        query.PageSize,
	}
	entries, total, err := s.repo.List(ctx, schoolID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable entries")
	}
	page, size := pageBounds(filter.Page, filter.PageSize)
	return entries, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListByClassSection returns the active entries of a class section.
func (s *TimetableService) ListByClassSection(ctx context.Context, schoolID, classID, sectionID string) ([]models.TimetableEntry, error) {
	return s.listAll(ctx, schoolID, models.TimetableEntryFilter{ClassID: classID, SectionID: sectionID})
}

// ListByTeacher returns the active entries taught by a teacher.
func (s *TimetableService) ListByTeacher(ctx context.Context, schoolID, teacherID string) ([]models.TimetableEntry, error) {
	return s.listAll(ctx, schoolID, models.TimetableEntryFilter{TeacherID: teacherID})
}

// ListByRoom returns the active entries booked in a room.
func (s *TimetableService) ListByRoom(ctx context.Context, schoolID, roomID string) ([]models.TimetableEntry, error) {
	return s.listAll(ctx, schoolID, models.TimetableEntryFilter{RoomID: roomID})
}

// ListByDay returns the active entries of one weekday.
func (s *TimetableService) ListByDay(ctx context.Context, schoolID, day string) ([]models.TimetableEntry, error) {
	normalized, ok := models.NormalizeDay(day)
	if !ok {
		return nil, invalid("unknown day %q", day)
	}
	return s.listAll(ctx, schoolID, models.TimetableEntryFilter{DayOfWeek: normalized})
}

// ClassGrid lays a class section's active entries over the active calendar. A
// cell holding several entries is flagged rather than collapsed, and entries
// pointing at periods or days the calendar no longer defines are listed apart.
func (s *TimetableService) ClassGrid(ctx context.Context, schoolID, classID, sectionID string) (*models.ClassGrid, error) {
	cfg, err := s.activeCalendar(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ListByClassSection(ctx, schoolID, classID, sectionID)
	if err != nil {
		return nil, err
	}
	return buildClassGrid(cfg, classID, sectionID, entries), nil
}

func buildClassGrid(cfg *models.CalendarConfig, classID, sectionID string, entries []models.TimetableEntry) *models.ClassGrid {
	grid := &models.ClassGrid{
		ClassID:          classID,
		SectionID:        sectionID,
		CalendarID:       cfg.ID,
		WorkingDays:      []string(cfg.WorkingDays),
		Periods:          []models.Period(cfg.Periods),
		Cells:            []models.GridCell{},
		UndefinedPeriods: []models.TimetableEntry{},
	}

	index := make(map[slotKey]int)
	for _, day := range cfg.WorkingDays {
		for _, period := range cfg.Periods {
			index[slotKey{day: day, period: period.PeriodNumber}] = len(grid.Cells)
			grid.Cells = append(grid.Cells, models.GridCell{
				DayOfWeek:    day,
				PeriodNumber: period.PeriodNumber,
				PeriodType:   period.Type,
				Entries:      []models.TimetableEntry{},
			})
		}
	}

	for _, entry := range entries {
		pos, ok := index[slotKey{day: entry.DayOfWeek, period: entry.PeriodNumber}]
		if !ok {
			grid.UndefinedPeriods = append(grid.UndefinedPeriods, entry)
			continue
		}
		cell := &grid.Cells[pos]
		cell.Entries = append(cell.Entries, entry)
		if len(cell.Entries) == 2 {
			cell.Anomaly = true
			grid.AnomalyCount++
		}
	}
	return grid
}

func (s *TimetableService) listAll(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, error) {
	entries, err := s.repo.ListAll(ctx, schoolID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable entries")
	}
	if entries == nil {
		entries = []models.TimetableEntry{}
	}
	return entries, nil
}

func (s *TimetableService) activeCalendar(ctx context.Context, schoolID string) (*models.CalendarConfig, error) {
	cfg, err := s.calendars.FindActive(ctx, schoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoActiveCalendar
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active calendar configuration")
	}
	return cfg, nil
}

func (s *TimetableService) validateSlot(ctx context.Context, schoolID, day string, periodNumber int) error {
	cfg, err := s.activeCalendar(ctx, schoolID)
	if err != nil {
		return err
	}
	if !cfg.IsWorkingDay(day) {
		return invalid("%s is not a working day", day)
	}
	period, ok := cfg.Period(periodNumber)
	if !ok {
		return invalid("period %d is not defined in the active calendar", periodNumber)
	}
	if !period.Type.Schedulable() {
		return appErrors.Clone(appErrors.ErrPeriodNotSchedulable, "period is a "+strings.ToLower(string(period.Type))+" period")
	}
	return nil
}

// validateReferences checks the collaborators an entry points at. Unchanged
// references of an existing entry are not re-checked.
func (s *TimetableService) validateReferences(ctx context.Context, entry *models.TimetableEntry, current *models.TimetableEntry) error {
	if current == nil || current.TeacherID != entry.TeacherID {
		teacher, err := s.teachers.FindByID(ctx, entry.SchoolID, entry.TeacherID)
		if err != nil {
			return lookupError(err, "teacher not found", "failed to load teacher")
		}
		if !teacher.Active {
			return invalid("teacher %s is inactive", entry.TeacherID)
		}
	}
	if s.subjects != nil && (current == nil || current.SubjectID != entry.SubjectID) {
		if _, err := s.subjects.FindByID(ctx, entry.SchoolID, entry.SubjectID); err != nil {
			return lookupError(err, "subject not found", "failed to load subject")
		}
	}
	if s.sections != nil && (current == nil || current.ClassID != entry.ClassID || current.SectionID != entry.SectionID) {
		if _, err := s.sections.Find(ctx, entry.SchoolID, entry.ClassID, entry.SectionID); err != nil {
			return lookupError(err, "class section not found", "failed to load class section")
		}
	}
	if entry.RoomID != nil && (current == nil || current.RoomID == nil || *current.RoomID != *entry.RoomID) {
		room, err := s.rooms.FindByID(ctx, entry.SchoolID, *entry.RoomID)
		if err != nil {
			return lookupError(err, "room not found", "failed to load room")
		}
		if !room.Bookable() {
			return appErrors.ErrRoomUnavailable
		}
	}
	return nil
}

// mapWriteError turns a storage unique violation into SCHEDULING_CONFLICT. The
// violation means a concurrent write won the slot after our pre-check passed.
func (s *TimetableService) mapWriteError(ctx context.Context, entry models.TimetableEntry, err error, message string) error {
	constraint, ok := repository.UniqueViolation(err)
	if !ok {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
	}
	switch constraint {
	case repository.ConstraintEntryTeacherSlot, repository.ConstraintEntryRoomSlot, repository.ConstraintEntryClassSlot:
	default:
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "timetable entry already exists")
	}

	s.metrics.RecordConflictCheck("race")
	s.logger.Warn("slot taken concurrently",
		zap.String("school_id", entry.SchoolID),
		zap.String("constraint", constraint),
		zap.String("day_of_week", entry.DayOfWeek),
		zap.Int("period_number", entry.PeriodNumber),
	)
	if detailed := s.guard.Check(ctx, entry); detailed != nil {
		var appErr *appErrors.Error
		if errors.As(detailed, &appErr) && appErr.Code == appErrors.ErrSchedulingConflict.Code {
			return detailed
		}
	}
	return appErrors.Wrap(err, appErrors.ErrSchedulingConflict.Code, appErrors.ErrSchedulingConflict.Status, "slot was booked concurrently")
}

// afterWrite refreshes dependent views. Failures are logged by the collaborators
// and never fail the scheduling operation.
func (s *TimetableService) afterWrite(ctx context.Context, schoolID string) {
	s.guard.Invalidate(ctx, schoolID)
	if s.summary != nil {
		s.summary.RequestRefresh(schoolID)
	}
}

func lookupError(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}
