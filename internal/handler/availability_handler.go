package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/service"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

type availabilityService interface {
	FreeTeachers(ctx context.Context, schoolID string, q service.SlotQuery) (*models.TeacherAvailability, error)
	FreeRooms(ctx context.Context, schoolID string, q service.SlotQuery, roomType string, minCapacity int) (*models.RoomAvailability, error)
	TeachersOnLeave(ctx context.Context, schoolID string, date time.Time) ([]string, error)
	SuggestSubstitutes(ctx context.Context, schoolID, entryID string, date time.Time) (*models.SubstituteSuggestion, error)
}

// AvailabilityHandler answers who and what is free at a slot.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

func slotQuery(c *gin.Context) (service.SlotQuery, error) {
	q := service.SlotQuery{DayOfWeek: strings.TrimSpace(c.Query("day"))}
	period, ok, err := queryInt(c, "period")
	if err != nil {
		return q, err
	}
	if !ok {
		return q, appErrors.Clone(appErrors.ErrValidation, "period is required")
	}
	q.PeriodNumber = period
	if q.Date, err = queryDate(c, "date"); err != nil {
		return q, err
	}
	return q, nil
}

func requiredDate(c *gin.Context) (time.Time, error) {
	date, err := queryDate(c, "date")
	if err != nil {
		return time.Time{}, err
	}
	if date == nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	return *date, nil
}

// Teachers godoc
// @Summary Teachers free at a slot
// @Tags Availability
// @Produce json
// @Param day query string false "Day of week, derived from date when omitted"
// @Param period query int true "Period number"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /availability/teachers [get]
func (h *AvailabilityHandler) Teachers(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	q, err := slotQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.FreeTeachers(c.Request.Context(), claims.SchoolID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Rooms godoc
// @Summary Rooms free at a slot
// @Tags Availability
// @Produce json
// @Param day query string true "Day of week"
// @Param period query int true "Period number"
// @Param type query string false "Room type"
// @Param minCapacity query int false "Minimum capacity"
// @Success 200 {object} response.Envelope
// @Router /availability/rooms [get]
func (h *AvailabilityHandler) Rooms(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	q, err := slotQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	minCapacity, _, err := queryInt(c, "minCapacity", "min_capacity")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.FreeRooms(c.Request.Context(), claims.SchoolID, q, strings.TrimSpace(c.Query("type")), minCapacity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Leave godoc
// @Summary Teachers on approved leave on a date
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /availability/leave [get]
func (h *AvailabilityHandler) Leave(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	date, err := requiredDate(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ids, err := h.service.TeachersOnLeave(c.Request.Context(), claims.SchoolID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"date": date.Format(models.DateLayout), "teacher_ids": ids})
}

// Substitutes godoc
// @Summary Suggest substitute teachers for an entry on a date
// @Tags Availability
// @Produce json
// @Param entryId query string true "Entry ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /availability/substitutes [get]
func (h *AvailabilityHandler) Substitutes(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	entryID := strings.TrimSpace(c.Query("entryId"))
	if entryID == "" {
		entryID = strings.TrimSpace(c.Query("entry_id"))
	}
	if entryID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "entryId is required"))
		return
	}
	date, err := requiredDate(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.SuggestSubstitutes(c.Request.Context(), claims.SchoolID, entryID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
