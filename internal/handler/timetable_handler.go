package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/middleware"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

type timetableService interface {
	Create(ctx context.Context, schoolID string, req dto.CreateEntryRequest) (*models.TimetableEntry, error)
	Update(ctx context.Context, schoolID, id string, req dto.UpdateEntryRequest) (*models.TimetableEntry, error)
	Deactivate(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error)
	Get(ctx context.Context, schoolID, id string) (*models.TimetableEntry, error)
	List(ctx context.Context, schoolID string, query dto.EntryQuery) ([]models.TimetableEntry, *models.Pagination, error)
	ListByTeacher(ctx context.Context, schoolID, teacherID string) ([]models.TimetableEntry, error)
	ListByRoom(ctx context.Context, schoolID, roomID string) ([]models.TimetableEntry, error)
	ListByDay(ctx context.Context, schoolID, day string) ([]models.TimetableEntry, error)
	ClassGrid(ctx context.Context, schoolID, classID, sectionID string) (*models.ClassGrid, error)
}

type conflictScanner interface {
	Scan(ctx context.Context, schoolID string) (*models.ConflictReport, error)
	Rescan(ctx context.Context, schoolID string) (*models.ConflictReport, error)
}

type summaryReader interface {
	Get(ctx context.Context, schoolID string) (*models.ScheduleSummary, error)
}

// TimetableHandler exposes the weekly entry store and its derived views.
type TimetableHandler struct {
	service   timetableService
	conflicts conflictScanner
	summary   summaryReader
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(service timetableService, conflicts conflictScanner, summary summaryReader) *TimetableHandler {
	return &TimetableHandler{service: service, conflicts: conflicts, summary: summary}
}

// List godoc
// @Summary List timetable entries
// @Tags Timetable
// @Produce json
// @Param class_id query string false "Class ID"
// @Param section_id query string false "Section ID"
// @Param teacher_id query string false "Teacher ID"
// @Param room_id query string false "Room ID"
// @Param day query string false "Day of week"
// @Param include_inactive query bool false "Include inactive entries"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /timetable/entries [get]
func (h *TimetableHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.EntryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid timetable query"))
		return
	}
	entries, pagination, err := h.service.List(c.Request.Context(), claims.SchoolID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Get godoc
// @Summary Get timetable entry
// @Tags Timetable
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetable/entries/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	entry, err := h.service.Get(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

// Create godoc
// @Summary Create timetable entry
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.CreateEntryRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetable/entries [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid timetable entry payload"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), claims.SchoolID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update timetable entry
// @Tags Timetable
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param payload body dto.UpdateEntryRequest true "Entry changes"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetable/entries/{id} [put]
func (h *TimetableHandler) Update(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid timetable entry payload"))
		return
	}
	entry, err := h.service.Update(c.Request.Context(), claims.SchoolID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

// Deactivate godoc
// @Summary Deactivate timetable entry
// @Tags Timetable
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/entries/{id} [delete]
func (h *TimetableHandler) Deactivate(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	entry, err := h.service.Deactivate(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

// ClassGrid godoc
// @Summary Weekly grid of a class section
// @Tags Timetable
// @Produce json
// @Param classId path string true "Class ID"
// @Param sectionId path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /timetable/classes/{classId}/sections/{sectionId}/grid [get]
func (h *TimetableHandler) ClassGrid(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	grid, err := h.service.ClassGrid(c.Request.Context(), claims.SchoolID, c.Param("classId"), c.Param("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grid)
}

// ByTeacher godoc
// @Summary Active entries taught by a teacher
// @Tags Timetable
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/teachers/{id}/entries [get]
func (h *TimetableHandler) ByTeacher(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	entries, err := h.service.ListByTeacher(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// ByRoom godoc
// @Summary Active entries booked in a room
// @Tags Timetable
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/rooms/{id}/entries [get]
func (h *TimetableHandler) ByRoom(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	entries, err := h.service.ListByRoom(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// ByDay godoc
// @Summary Active entries of one weekday
// @Tags Timetable
// @Produce json
// @Param day path string true "Day of week"
// @Success 200 {object} response.Envelope
// @Router /timetable/days/{day}/entries [get]
func (h *TimetableHandler) ByDay(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	entries, err := h.service.ListByDay(c.Request.Context(), claims.SchoolID, c.Param("day"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// Conflicts godoc
// @Summary Scan the timetable for double bookings
// @Tags Timetable
// @Produce json
// @Param refresh query bool false "Bypass the cached report"
// @Success 200 {object} response.Envelope
// @Router /timetable/conflicts [get]
func (h *TimetableHandler) Conflicts(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	refresh, _ := strconv.ParseBool(c.Query("refresh"))
	scan := h.conflicts.Scan
	if refresh {
		scan = h.conflicts.Rescan
	}
	report, err := scan(c.Request.Context(), claims.SchoolID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, report.FromCache)
	response.JSON(c, http.StatusOK, report, nil, middleware.ResponseMeta(c))
}

// Summary godoc
// @Summary Per-school schedule load summary
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/summary [get]
func (h *TimetableHandler) Summary(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	summary, err := h.summary.Get(c.Request.Context(), claims.SchoolID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
