package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
)

// memEntryRepo keeps entries in memory and enforces the same partial unique
// indexes as the database: one active entry per teacher, room and class section
// at each slot.
type memEntryRepo struct {
	mu      sync.Mutex
	items   map[string]models.TimetableEntry
	order   []string
	failNow error
}

func newMemEntryRepo(entries ...models.TimetableEntry) *memEntryRepo {
	repo := &memEntryRepo{items: make(map[string]models.TimetableEntry)}
	for _, e := range entries {
		repo.put(e)
	}
	return repo
}

func (m *memEntryRepo) put(e models.TimetableEntry) {
	if _, exists := m.items[e.ID]; !exists {
		m.order = append(m.order, e.ID)
	}
	m.items[e.ID] = e
}

func (m *memEntryRepo) violation(e models.TimetableEntry) error {
	if e.Status != models.StatusActive {
		return nil
	}
	for _, other := range m.items {
		if other.ID == e.ID || other.Status != models.StatusActive {
			continue
		}
		if other.SchoolID != e.SchoolID || other.DayOfWeek != e.DayOfWeek || other.PeriodNumber != e.PeriodNumber {
			continue
		}
		switch {
		case other.TeacherID == e.TeacherID:
			return &pq.Error{Code: "23505", Constraint: repository.ConstraintEntryTeacherSlot}
		case other.RoomID != nil && e.RoomID != nil && *other.RoomID == *e.RoomID:
			return &pq.Error{Code: "23505", Constraint: repository.ConstraintEntryRoomSlot}
		case other.ClassID == e.ClassID && other.SectionID == e.SectionID:
			return &pq.Error{Code: "23505", Constraint: repository.ConstraintEntryClassSlot}
		}
	}
	return nil
}

func (m *memEntryRepo) Create(ctx context.Context, entry *models.TimetableEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNow != nil {
		err := m.failNow
		m.failNow = nil
		return err
	}
	if err := m.violation(*entry); err != nil {
		return err
	}
	m.put(*entry)
	return nil
}

func (m *memEntryRepo) Update(ctx context.Context, entry *models.TimetableEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.items[entry.ID]
	if !ok || current.Status != models.StatusActive {
		return sql.ErrNoRows
	}
	if err := m.violation(*entry); err != nil {
		return err
	}
	m.put(*entry)
	return nil
}

func (m *memEntryRepo) Deactivate(ctx context.Context, schoolID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.items[id]
	if !ok || entry.SchoolID != schoolID || entry.Status != models.StatusActive {
		return sql.ErrNoRows
	}
	entry.Status = models.StatusInactive
	m.items[id] = entry
	return nil
}

func (m *memEntryRepo) FindByID(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.items[id]
	if !ok || entry.SchoolID != schoolID {
		return nil, sql.ErrNoRows
	}
	return &entry, nil
}

func (m *memEntryRepo) matching(schoolID string, filter models.TimetableEntryFilter) []models.TimetableEntry {
	var out []models.TimetableEntry
	for _, id := range m.order {
		e := m.items[id]
		if e.SchoolID != schoolID {
			continue
		}
		if !filter.IncludeInactive && e.Status != models.StatusActive {
			continue
		}
		if filter.ClassID != "" && e.ClassID != filter.ClassID {
			continue
		}
		if filter.SectionID != "" && e.SectionID != filter.SectionID {
			continue
		}
		if filter.TeacherID != "" && e.TeacherID != filter.TeacherID {
			continue
		}
		if filter.RoomID != "" && (e.RoomID == nil || *e.RoomID != filter.RoomID) {
			continue
		}
		if filter.DayOfWeek != "" && e.DayOfWeek != filter.DayOfWeek {
			continue
		}
		if filter.PeriodNumber != 0 && e.PeriodNumber != filter.PeriodNumber {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := models.DayIndex(out[i].DayOfWeek), models.DayIndex(out[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		return out[i].PeriodNumber < out[j].PeriodNumber
	})
	return out
}

func (m *memEntryRepo) List(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.matching(schoolID, filter)
	page, size := pageBounds(filter.Page, filter.PageSize)
	start := (page - 1) * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (m *memEntryRepo) ListAll(ctx context.Context, schoolID string, filter models.TimetableEntryFilter) ([]models.TimetableEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matching(schoolID, filter), nil
}

func (m *memEntryRepo) ListActiveAtSlot(ctx context.Context, schoolID, day string, period int) ([]models.TimetableEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matching(schoolID, models.TimetableEntryFilter{DayOfWeek: day, PeriodNumber: period}), nil
}

// forceInsert bypasses the unique indexes, simulating rows written by a racing writer.
func (m *memEntryRepo) forceInsert(e models.TimetableEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(e)
}

type stubCalendarReader struct {
	cfg *models.CalendarConfig
	err error
}

func (s *stubCalendarReader) FindActive(ctx context.Context, schoolID string) (*models.CalendarConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cfg == nil {
		return nil, sql.ErrNoRows
	}
	cp := *s.cfg
	return &cp, nil
}

type stubTeachers struct {
	items map[string]models.Teacher
}

func (s *stubTeachers) FindByID(ctx context.Context, schoolID, id string) (*models.Teacher, error) {
	t, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (s *stubTeachers) ListActive(ctx context.Context, schoolID string) ([]models.Teacher, error) {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []models.Teacher
	for _, id := range ids {
		if t := s.items[id]; t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubRooms struct {
	items map[string]models.Room
}

func (s *stubRooms) FindByID(ctx context.Context, schoolID, id string) (*models.Room, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (s *stubRooms) List(ctx context.Context, schoolID string, filter models.RoomFilter) ([]models.Room, error) {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []models.Room
	for _, id := range ids {
		r := s.items[id]
		if !filter.IncludeInactive && r.Status != models.StatusActive {
			continue
		}
		if filter.RoomType != "" && r.RoomType != filter.RoomType {
			continue
		}
		if r.Capacity < filter.MinCapacity {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type stubLeave struct {
	items []models.LeaveRequest
}

func (s *stubLeave) ListApprovedTeacherLeave(ctx context.Context, schoolID string, date time.Time) ([]models.LeaveRequest, error) {
	return s.items, nil
}

type stubOpenSubstitutes struct {
	items []models.SubstituteAssignment
}

func (s *stubOpenSubstitutes) ListOpenAtSlot(ctx context.Context, schoolID string, date time.Time, period int) ([]models.SubstituteAssignment, error) {
	var out []models.SubstituteAssignment
	for _, a := range s.items {
		if a.AssignmentDate.Equal(models.DateOnly(date)) && a.PeriodNumber == period && a.Status.Open() {
			out = append(out, a)
		}
	}
	return out, nil
}

type recordingRefresher struct {
	mu      sync.Mutex
	schools []string
}

func (r *recordingRefresher) RequestRefresh(schoolID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schools = append(r.schools, schoolID)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func weekCalendar() *models.CalendarConfig {
	return &models.CalendarConfig{
		ID:           "cal-1",
		SchoolID:     "school-1",
		AcademicYear: "2026/2027",
		WorkingDays:  pq.StringArray{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday},
		Periods: models.PeriodList{
			{PeriodNumber: 1, StartTime: "07:00", EndTime: "07:45", Duration: 45, Type: models.PeriodRegular},
			{PeriodNumber: 2, StartTime: "07:45", EndTime: "08:30", Duration: 45, Type: models.PeriodRegular},
			{PeriodNumber: 3, StartTime: "08:30", EndTime: "09:15", Duration: 45, Type: models.PeriodRegular},
			{PeriodNumber: 4, StartTime: "09:15", EndTime: "09:30", Duration: 15, Type: models.PeriodBreak},
		},
		Status: models.StatusActive,
	}
}

func activeEntry(id, teacher, class, section, day string, period int, room *string) models.TimetableEntry {
	return models.TimetableEntry{
		ID:           id,
		SchoolID:     "school-1",
		ClassID:      class,
		SectionID:    section,
		DayOfWeek:    day,
		PeriodNumber: period,
		TeacherID:    teacher,
		SubjectID:    "math",
		RoomID:       room,
		Status:       models.StatusActive,
	}
}
