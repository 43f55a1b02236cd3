package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/service"
)

type stubAvailabilityService struct {
	slot        service.SlotQuery
	roomType    string
	minCapacity int
	entryID     string
	date        time.Time
}

func (s *stubAvailabilityService) FreeTeachers(ctx context.Context, schoolID string, q service.SlotQuery) (*models.TeacherAvailability, error) {
	s.slot = q
	return &models.TeacherAvailability{DayOfWeek: q.DayOfWeek, PeriodNumber: q.PeriodNumber, PeriodDefined: true, Teachers: []models.Teacher{{ID: "t1"}}}, nil
}

func (s *stubAvailabilityService) FreeRooms(ctx context.Context, schoolID string, q service.SlotQuery, roomType string, minCapacity int) (*models.RoomAvailability, error) {
	s.slot = q
	s.roomType = roomType
	s.minCapacity = minCapacity
	return &models.RoomAvailability{DayOfWeek: q.DayOfWeek, PeriodNumber: q.PeriodNumber, Rooms: []models.Room{}}, nil
}

func (s *stubAvailabilityService) TeachersOnLeave(ctx context.Context, schoolID string, date time.Time) ([]string, error) {
	s.date = date
	return []string{"t2"}, nil
}

func (s *stubAvailabilityService) SuggestSubstitutes(ctx context.Context, schoolID, entryID string, date time.Time) (*models.SubstituteSuggestion, error) {
	s.entryID = entryID
	s.date = date
	return &models.SubstituteSuggestion{Date: date, Teachers: []models.Teacher{}}, nil
}

func TestAvailabilityHandlerTeachers(t *testing.T) {
	svc := &stubAvailabilityService{}
	h := NewAvailabilityHandler(svc)
	router := newTestRouter(http.MethodGet, "/availability/teachers", teacherClaims(), h.Teachers)

	rec, _ := perform(t, router, http.MethodGet, "/availability/teachers?day=MONDAY&period=3&date=2026-10-19", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MONDAY", svc.slot.DayOfWeek)
	assert.Equal(t, 3, svc.slot.PeriodNumber)
	require.NotNil(t, svc.slot.Date)
	assert.Equal(t, "2026-10-19", svc.slot.Date.Format(models.DateLayout))
}

func TestAvailabilityHandlerSlotValidation(t *testing.T) {
	h := NewAvailabilityHandler(&stubAvailabilityService{})
	router := newTestRouter(http.MethodGet, "/availability/teachers", teacherClaims(), h.Teachers)

	cases := map[string]string{
		"missing period": "/availability/teachers?day=MONDAY",
		"bad period":     "/availability/teachers?day=MONDAY&period=first",
		"bad date":       "/availability/teachers?period=1&date=19-10-2026",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			rec, env := perform(t, router, http.MethodGet, target, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		})
	}
}

func TestAvailabilityHandlerRoomsFilters(t *testing.T) {
	svc := &stubAvailabilityService{}
	h := NewAvailabilityHandler(svc)
	router := newTestRouter(http.MethodGet, "/availability/rooms", teacherClaims(), h.Rooms)

	rec, _ := perform(t, router, http.MethodGet, "/availability/rooms?day=TUESDAY&period=2&type=LAB&min_capacity=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "LAB", svc.roomType)
	assert.Equal(t, 30, svc.minCapacity)
}

func TestAvailabilityHandlerSubstitutes(t *testing.T) {
	svc := &stubAvailabilityService{}
	h := NewAvailabilityHandler(svc)
	router := newTestRouter(http.MethodGet, "/availability/substitutes", adminClaims(), h.Substitutes)

	rec, _ := perform(t, router, http.MethodGet, "/availability/substitutes?entry_id=e1&date=2026-10-19", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e1", svc.entryID)

	rec, _ = perform(t, router, http.MethodGet, "/availability/substitutes?date=2026-10-19", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = perform(t, router, http.MethodGet, "/availability/substitutes?entryId=e1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityHandlerLeave(t *testing.T) {
	svc := &stubAvailabilityService{}
	h := NewAvailabilityHandler(svc)
	router := newTestRouter(http.MethodGet, "/availability/leave", adminClaims(), h.Leave)

	rec, env := perform(t, router, http.MethodGet, "/availability/leave?date=2026-10-19", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"teacher_ids":["t2"]`)
}
