package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type availabilityEntryRepository interface {
	FindByID(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error)
	ListActiveAtSlot(ctx context.Context, schoolID, day string, period int) ([]models.TimetableEntry, error)
}

type rosterReader interface {
	ListActive(ctx context.Context, schoolID string) ([]models.Teacher, error)
}

type roomLister interface {
	List(ctx context.Context, schoolID string, filter models.RoomFilter) ([]models.Room, error)
}

type leaveReader interface {
	ListApprovedTeacherLeave(ctx context.Context, schoolID string, date time.Time) ([]models.LeaveRequest, error)
}

type openSubstituteReader interface {
	ListOpenAtSlot(ctx context.Context, schoolID string, date time.Time, period int) ([]models.SubstituteAssignment, error)
}

// SlotQuery identifies a slot, optionally pinned to a concrete date.
type SlotQuery struct {
	DayOfWeek    string
	PeriodNumber int
	Date         *time.Time
}

// AvailabilityService answers who and what is free at a slot. It is the only
// place that decides whether a teacher may cover a lesson.
type AvailabilityService struct {
	entries     availabilityEntryRepository
	calendars   activeCalendarReader
	teachers    rosterReader
	rooms       roomLister
	leave       leaveReader
	substitutes openSubstituteReader
	logger      *zap.Logger
}

// NewAvailabilityService constructs the availability query engine.
func NewAvailabilityService(entries availabilityEntryRepository, calendars activeCalendarReader, teachers rosterReader, rooms roomLister, leave leaveReader, substitutes openSubstituteReader, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		entries:     entries,
		calendars:   calendars,
		teachers:    teachers,
		rooms:       rooms,
		leave:       leave,
		substitutes: substitutes,
		logger:      logger,
	}
}

// slotOccupancy is everything known about one slot, and one date when given.
type slotOccupancy struct {
	periodDefined bool
	warning       string
	entries       []models.TimetableEntry
	teaching      map[string][]string
	rooms         map[string]struct{}
	onLeave       map[string]struct{}
	substituting  map[string]string
}

// teacherBusy explains why teacherID cannot take the slot, or returns "".
func (o *slotOccupancy) teacherBusy(teacherID string) string {
	if _, ok := o.onLeave[teacherID]; ok {
		return "teacher is on approved leave"
	}
	if assignmentID, ok := o.substituting[teacherID]; ok {
		return fmt.Sprintf("teacher already substitutes at this slot (assignment %s)", assignmentID)
	}
	// A covered lesson still belongs to its teacher until the entry is deactivated.
	if entryIDs := o.teaching[teacherID]; len(entryIDs) > 0 {
		return fmt.Sprintf("teacher holds entry %s at this slot", entryIDs[0])
	}
	return ""
}

func (s *AvailabilityService) resolveSlot(q SlotQuery) (SlotQuery, error) {
	if q.PeriodNumber < 1 {
		return q, invalid("period must be a positive number")
	}
	if q.Date != nil {
		date := models.DateOnly(*q.Date)
		q.Date = &date
	}
	if q.DayOfWeek == "" {
		if q.Date == nil {
			return q, invalid("day or date is required")
		}
		q.DayOfWeek = models.DayOfDate(*q.Date)
		return q, nil
	}
	day, ok := models.NormalizeDay(q.DayOfWeek)
	if !ok {
		return q, invalid("unknown day %q", q.DayOfWeek)
	}
	if q.Date != nil && models.DayOfDate(*q.Date) != day {
		return q, invalid("date %s is not a %s", q.Date.Format(models.DateLayout), day)
	}
	q.DayOfWeek = day
	return q, nil
}

// loadOccupancy reads calendar, entries, leave and substitutes for a slot concurrently.
func (s *AvailabilityService) loadOccupancy(ctx context.Context, schoolID string, q SlotQuery) (*slotOccupancy, error) {
	occ := &slotOccupancy{
		teaching:     make(map[string][]string),
		rooms:        make(map[string]struct{}),
		onLeave:      make(map[string]struct{}),
		substituting: make(map[string]string),
	}

	var (
		cfg         *models.CalendarConfig
		leaves      []models.LeaveRequest
		assignments []models.SubstituteAssignment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.calendars.FindActive(gctx, schoolID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("load active calendar: %w", err)
		}
		cfg = found
		return nil
	})
	g.Go(func() error {
		entries, err := s.entries.ListActiveAtSlot(gctx, schoolID, q.DayOfWeek, q.PeriodNumber)
		if err != nil {
			return err
		}
		occ.entries = entries
		return nil
	})
	if q.Date != nil {
		date := *q.Date
		g.Go(func() error {
			found, err := s.leave.ListApprovedTeacherLeave(gctx, schoolID, date)
			if err != nil {
				return err
			}
			leaves = found
			return nil
		})
		g.Go(func() error {
			found, err := s.substitutes.ListOpenAtSlot(gctx, schoolID, date, q.PeriodNumber)
			if err != nil {
				return err
			}
			assignments = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot availability")
	}

	switch {
	case cfg == nil:
		occ.warning = "no active calendar configuration"
	default:
		if _, ok := cfg.Period(q.PeriodNumber); ok && cfg.IsWorkingDay(q.DayOfWeek) {
			occ.periodDefined = true
		} else if !ok {
			occ.warning = fmt.Sprintf("period %d is not defined in the active calendar", q.PeriodNumber)
		} else {
			occ.warning = fmt.Sprintf("%s is not a working day", q.DayOfWeek)
		}
	}

	for _, entry := range occ.entries {
		occ.teaching[entry.TeacherID] = append(occ.teaching[entry.TeacherID], entry.ID)
		if entry.RoomID != nil {
			occ.rooms[*entry.RoomID] = struct{}{}
		}
	}
	for _, leave := range leaves {
		if q.Date != nil && leave.Covers(*q.Date) {
			occ.onLeave[leave.ApplicantID] = struct{}{}
		}
	}
	for _, assignment := range assignments {
		if assignment.DayOfWeek != q.DayOfWeek {
			continue
		}
		occ.substituting[assignment.SubstituteTeacherID] = assignment.ID
	}
	return occ, nil
}

// FreeTeachers lists active teachers not busy at the slot. With a date, teachers
// on approved leave or already substituting at that slot are excluded too.
func (s *AvailabilityService) FreeTeachers(ctx context.Context, schoolID string, q SlotQuery) (*models.TeacherAvailability, error) {
	q, err := s.resolveSlot(q)
	if err != nil {
		return nil, err
	}

	var roster []models.Teacher
	var occ *slotOccupancy
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.teachers.ListActive(gctx, schoolID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher roster")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		occ, err = s.loadOccupancy(gctx, schoolID, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	free := make([]models.Teacher, 0, len(roster))
	for _, teacher := range roster {
		if occ.teacherBusy(teacher.ID) == "" {
			free = append(free, teacher)
		}
	}
	return &models.TeacherAvailability{
		DayOfWeek:     q.DayOfWeek,
		PeriodNumber:  q.PeriodNumber,
		Date:          q.Date,
		PeriodDefined: occ.periodDefined,
		Warning:       occ.warning,
		Teachers:      free,
	}, nil
}

// FreeRooms lists bookable rooms not occupied at the slot.
func (s *AvailabilityService) FreeRooms(ctx context.Context, schoolID string, q SlotQuery, roomType string, minCapacity int) (*models.RoomAvailability, error) {
	q, err := s.resolveSlot(q)
	if err != nil {
		return nil, err
	}
	if minCapacity < 0 {
		return nil, invalid("minCapacity must not be negative")
	}

	var rooms []models.Room
	var occ *slotOccupancy
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = s.rooms.List(gctx, schoolID, models.RoomFilter{RoomType: roomType, MinCapacity: minCapacity})
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		occ, err = s.loadOccupancy(gctx, schoolID, SlotQuery{DayOfWeek: q.DayOfWeek, PeriodNumber: q.PeriodNumber})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	free := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !room.Bookable() {
			continue
		}
		if _, taken := occ.rooms[room.ID]; taken {
			continue
		}
		free = append(free, room)
	}
	return &models.RoomAvailability{
		DayOfWeek:     q.DayOfWeek,
		PeriodNumber:  q.PeriodNumber,
		PeriodDefined: occ.periodDefined,
		Warning:       occ.warning,
		Rooms:         free,
	}, nil
}

// TeachersOnLeave returns the ids of teachers whose approved leave covers date.
func (s *AvailabilityService) TeachersOnLeave(ctx context.Context, schoolID string, date time.Time) ([]string, error) {
	date = models.DateOnly(date)
	leaves, err := s.leave.ListApprovedTeacherLeave(ctx, schoolID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave requests")
	}
	seen := make(map[string]struct{})
	ids := []string{}
	for _, leave := range leaves {
		if !leave.Covers(date) {
			continue
		}
		if _, dup := seen[leave.ApplicantID]; dup {
			continue
		}
		seen[leave.ApplicantID] = struct{}{}
		ids = append(ids, leave.ApplicantID)
	}
	sort.Strings(ids)
	return ids, nil
}

// SuggestSubstitutes lists teachers who are free and allowed to cover the entry on date.
func (s *AvailabilityService) SuggestSubstitutes(ctx context.Context, schoolID, entryID string, date time.Time) (*models.SubstituteSuggestion, error) {
	entry, err := s.activeEntry(ctx, schoolID, entryID)
	if err != nil {
		return nil, err
	}
	date = models.DateOnly(date)
	if models.DayOfDate(date) != entry.DayOfWeek {
		return nil, invalid("date %s is not a %s", date.Format(models.DateLayout), entry.DayOfWeek)
	}

	availability, err := s.FreeTeachers(ctx, schoolID, SlotQuery{DayOfWeek: entry.DayOfWeek, PeriodNumber: entry.PeriodNumber, Date: &date})
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Teacher, 0, len(availability.Teachers))
	for _, teacher := range availability.Teachers {
		if teacher.ID == entry.TeacherID {
			continue
		}
		if !teacher.CanTeach(entry.SubjectID) {
			continue
		}
		candidates = append(candidates, teacher)
	}
	return &models.SubstituteSuggestion{
		Entry:         *entry,
		Date:          date,
		PeriodDefined: availability.PeriodDefined,
		Warning:       availability.Warning,
		Teachers:      candidates,
	}, nil
}

// CheckSubstitute verifies that teacher may cover entry on date. It returns
// SUBSTITUTE_INELIGIBLE for a subject mismatch and SUBSTITUTE_BUSY when the
// teacher is teaching, substituting or on leave at that slot.
func (s *AvailabilityService) CheckSubstitute(ctx context.Context, schoolID string, entry models.TimetableEntry, teacher models.Teacher, date time.Time) error {
	if !teacher.CanTeach(entry.SubjectID) {
		return appErrors.WithDetails(appErrors.ErrSubstituteIneligible, map[string]string{
			"teacher_id": teacher.ID,
			"subject_id": entry.SubjectID,
		})
	}
	date = models.DateOnly(date)
	occ, err := s.loadOccupancy(ctx, schoolID, SlotQuery{DayOfWeek: entry.DayOfWeek, PeriodNumber: entry.PeriodNumber, Date: &date})
	if err != nil {
		return err
	}
	if reason := occ.teacherBusy(teacher.ID); reason != "" {
		return appErrors.WithDetails(appErrors.Clone(appErrors.ErrSubstituteBusy, reason), map[string]interface{}{
			"teacher_id":    teacher.ID,
			"day_of_week":   entry.DayOfWeek,
			"period_number": entry.PeriodNumber,
			"date":          date.Format(models.DateLayout),
		})
	}
	return nil
}

func (s *AvailabilityService) activeEntry(ctx context.Context, schoolID, entryID string) (*models.TimetableEntry, error) {
	entry, err := s.entries.FindByID(ctx, schoolID, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrEntryNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}
	if !entry.IsActive() {
		return nil, appErrors.ErrEntryNotFound
	}
	return entry, nil
}
