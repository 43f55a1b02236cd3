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

type swapService interface {
	Request(ctx context.Context, schoolID, requester string, req dto.CreateSwapRequest) (*models.PeriodSwapRequest, error)
	Approve(ctx context.Context, schoolID, id, approver string) (*models.PeriodSwapRequest, error)
	Reject(ctx context.Context, schoolID, id, approver, reason string) (*models.PeriodSwapRequest, error)
	Cancel(ctx context.Context, schoolID, id, actor string, isAdmin bool) (*models.PeriodSwapRequest, error)
	Get(ctx context.Context, schoolID, id string) (*models.PeriodSwapRequest, error)
	List(ctx context.Context, schoolID string, filter models.SwapFilter) ([]models.PeriodSwapRequest, *models.Pagination, error)
}

// SwapHandler negotiates period swaps.
type SwapHandler struct {
	service swapService
}

// NewSwapHandler constructs the handler.
func NewSwapHandler(service swapService) *SwapHandler {
	return &SwapHandler{service: service}
}

// List godoc
// @Summary List swap requests
// @Tags Swaps
// @Produce json
// @Param status query string false "Status"
// @Param date query string false "Swap date (YYYY-MM-DD)"
// @Param requested_by query string false "Requester user ID"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /swaps [get]
func (h *SwapHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	filter := models.SwapFilter{
		Status:      models.SwapStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		RequestedBy: strings.TrimSpace(c.Query("requested_by")),
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
// @Summary Get swap request
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap ID"
// @Success 200 {object} response.Envelope
// @Router /swaps/{id} [get]
func (h *SwapHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	swap, err := h.service.Get(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, swap)
}

// Request godoc
// @Summary Request a period swap
// @Tags Swaps
// @Accept json
// @Produce json
// @Param payload body dto.CreateSwapRequest true "Swap payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /swaps [post]
func (h *SwapHandler) Request(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid swap payload"))
		return
	}
	swap, err := h.service.Request(c.Request.Context(), claims.SchoolID, claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, swap)
}

// Approve godoc
// @Summary Approve a pending swap
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap ID"
// @Success 200 {object} response.Envelope
// @Router /swaps/{id}/approve [post]
func (h *SwapHandler) Approve(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	swap, err := h.service.Approve(c.Request.Context(), claims.SchoolID, c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, swap)
}

// Reject godoc
// @Summary Reject a pending swap
// @Tags Swaps
// @Accept json
// @Produce json
// @Param id path string true "Swap ID"
// @Param payload body dto.CancelRequest false "Rejection reason"
// @Success 200 {object} response.Envelope
// @Router /swaps/{id}/reject [post]
func (h *SwapHandler) Reject(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, bindError(err, "invalid reject payload"))
			return
		}
	}
	swap, err := h.service.Reject(c.Request.Context(), claims.SchoolID, c.Param("id"), claims.UserID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, swap)
}

// Cancel godoc
// @Summary Withdraw a pending swap
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /swaps/{id}/cancel [post]
func (h *SwapHandler) Cancel(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	swap, err := h.service.Cancel(c.Request.Context(), claims.SchoolID, c.Param("id"), claims.UserID, claims.Role.IsAdmin())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, swap)
}
