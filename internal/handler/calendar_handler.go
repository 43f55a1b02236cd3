package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

type calendarService interface {
	Create(ctx context.Context, schoolID, createdBy string, req dto.CreateCalendarConfigRequest) (*models.CalendarConfig, error)
	Activate(ctx context.Context, schoolID, id string) (*models.CalendarConfig, error)
	Delete(ctx context.Context, schoolID, id string) error
	Get(ctx context.Context, schoolID, id string) (*models.CalendarConfig, error)
	GetActive(ctx context.Context, schoolID string) (*models.CalendarConfig, error)
	List(ctx context.Context, schoolID string) ([]models.CalendarConfig, error)
	UpsertPeriod(ctx context.Context, schoolID, configID string, req dto.PeriodRequest) (*models.CalendarConfig, error)
	RemovePeriod(ctx context.Context, schoolID, configID string, periodNumber int) (*models.CalendarConfig, error)
	UpsertShift(ctx context.Context, schoolID, configID string, req dto.ShiftRequest) (*models.CalendarConfig, error)
	RemoveShift(ctx context.Context, schoolID, configID, shiftID string) (*models.CalendarConfig, error)
}

// CalendarHandler manages weekly calendar structures.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// List godoc
// @Summary List calendar configurations
// @Tags Calendars
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendars [get]
func (h *CalendarHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	configs, err := h.service.List(c.Request.Context(), claims.SchoolID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, configs)
}

// Active godoc
// @Summary Get the active calendar configuration
// @Tags Calendars
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /calendars/active [get]
func (h *CalendarHandler) Active(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	cfg, err := h.service.GetActive(c.Request.Context(), claims.SchoolID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// Get godoc
// @Summary Get calendar configuration
// @Tags Calendars
// @Produce json
// @Param id path string true "Calendar ID"
// @Success 200 {object} response.Envelope
// @Router /calendars/{id} [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	cfg, err := h.service.Get(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// Create godoc
// @Summary Create and activate a calendar configuration
// @Tags Calendars
// @Accept json
// @Produce json
// @Param payload body dto.CreateCalendarConfigRequest true "Calendar payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /calendars [post]
func (h *CalendarHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CreateCalendarConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid calendar payload"))
		return
	}
	cfg, err := h.service.Create(c.Request.Context(), claims.SchoolID, claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cfg)
}

// Activate godoc
// @Summary Make a calendar configuration the active one
// @Tags Calendars
// @Produce json
// @Param id path string true "Calendar ID"
// @Success 200 {object} response.Envelope
// @Router /calendars/{id}/activate [post]
func (h *CalendarHandler) Activate(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	cfg, err := h.service.Activate(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// Delete godoc
// @Summary Soft delete a calendar configuration
// @Tags Calendars
// @Param id path string true "Calendar ID"
// @Success 204
// @Router /calendars/{id} [delete]
func (h *CalendarHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.SchoolID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpsertPeriod godoc
// @Summary Add or replace a period
// @Tags Calendars
// @Accept json
// @Produce json
// @Param id path string true "Calendar ID"
// @Param payload body dto.PeriodRequest true "Period payload"
// @Success 200 {object} response.Envelope
// @Router /calendars/{id}/periods [put]
func (h *CalendarHandler) UpsertPeriod(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid period payload"))
		return
	}
	cfg, err := h.service.UpsertPeriod(c.Request.Context(), claims.SchoolID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// RemovePeriod godoc
// @Summary Remove a period
// @Tags Calendars
// @Produce json
// @Param id path string true "Calendar ID"
// @Param number path int true "Period number"
// @Success 200 {object} response.Envelope
// @Router /calendars/{id}/periods/{number} [delete]
func (h *CalendarHandler) RemovePeriod(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	number, err := pathInt(c, "number")
	if err != nil {
		response.Error(c, err)
		return
	}
	cfg, err := h.service.RemovePeriod(c.Request.Context(), claims.SchoolID, c.Param("id"), number)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// UpsertShift godoc
// @Summary Add or replace a shift
// @Tags Calendars
// @Accept json
// @Produce json
// @Param id path string true "Calendar ID"
// @Param payload body dto.ShiftRequest true "Shift payload"
// @Success 200 {object} response.Envelope
// @Router /calendars/{id}/shifts [put]
func (h *CalendarHandler) UpsertShift(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid shift payload"))
		return
	}
	cfg, err := h.service.UpsertShift(c.Request.Context(), claims.SchoolID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// RemoveShift godoc
// @Summary Remove a shift
// @Tags Calendars
// @Produce json
// @Param id path string true "Calendar ID"
// @Param shiftId path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Router /calendars/{id}/shifts/{shiftId} [delete]
func (h *CalendarHandler) RemoveShift(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	cfg, err := h.service.RemoveShift(c.Request.Context(), claims.SchoolID, c.Param("id"), c.Param("shiftId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}
