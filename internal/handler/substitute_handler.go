package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

type substituteService interface {
	Create(ctx context.Context, schoolID, createdBy string, req dto.CreateSubstituteRequest) (*models.SubstituteAssignment, error)
	Confirm(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error)
	Complete(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error)
	Cancel(ctx context.Context, schoolID, id, reason string) (*models.SubstituteAssignment, error)
	Get(ctx context.Context, schoolID, id string) (*models.SubstituteAssignment, error)
	List(ctx context.Context, schoolID string, filter models.SubstituteFilter) ([]models.SubstituteAssignment, *models.Pagination, error)
}

// SubstituteHandler manages date scoped substitute assignments.
type SubstituteHandler struct {
	service substituteService
}

// NewSubstituteHandler constructs the handler.
func NewSubstituteHandler(service substituteService) *SubstituteHandler {
	return &SubstituteHandler{service: service}
}

// List godoc
// @Summary List substitute assignments
// @Tags Substitutes
// @Produce json
// @Param date query string false "Assignment date (YYYY-MM-DD)"
// @Param teacher_id query string false "Original or substitute teacher"
// @Param status query string false "Status"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /substitutes [get]
func (h *SubstituteHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	filter := models.SubstituteFilter{
		TeacherID: strings.TrimSpace(c.Query("teacher_id")),
		Status:    models.SubstituteStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
	}
	var err error
	if filter.Date, err = queryDate(c, "date"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Page, _, err = queryInt(c, "page"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.PageSize, _, err = queryInt(c, "page_size"); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), claims.SchoolID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get substitute assignment
// @Tags Substitutes
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /substitutes/{id} [get]
func (h *SubstituteHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	assignment, err := h.service.Get(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignment)
}

// Create godoc
// @Summary Assign a substitute teacher
// @Tags Substitutes
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubstituteRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /substitutes [post]
func (h *SubstituteHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CreateSubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid substitute payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), claims.SchoolID, claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Confirm godoc
// @Summary Confirm a pending assignment
// @Tags Substitutes
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /substitutes/{id}/confirm [post]
func (h *SubstituteHandler) Confirm(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	assignment, err := h.service.Confirm(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignment)
}

// Complete godoc
// @Summary Mark a confirmed assignment completed
// @Tags Substitutes
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /substitutes/{id}/complete [post]
func (h *SubstituteHandler) Complete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	assignment, err := h.service.Complete(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignment)
}

// Cancel godoc
// @Summary Cancel an open assignment
// @Tags Substitutes
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body dto.CancelRequest false "Cancellation reason"
// @Success 200 {object} response.Envelope
// @Router /substitutes/{id}/cancel [post]
func (h *SubstituteHandler) Cancel(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, bindError(err, "invalid cancel payload"))
			return
		}
	}
	assignment, err := h.service.Cancel(c.Request.Context(), claims.SchoolID, c.Param("id"), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignment)
}
