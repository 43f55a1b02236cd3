package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

type roomService interface {
	Create(ctx context.Context, schoolID string, req dto.RoomRequest) (*models.Room, error)
	Update(ctx context.Context, schoolID, id string, req dto.RoomRequest) (*models.Room, error)
	Deactivate(ctx context.Context, schoolID, id string) (*models.Room, error)
	Get(ctx context.Context, schoolID, id string) (*models.Room, error)
	List(ctx context.Context, schoolID string, filter models.RoomFilter) ([]models.Room, error)
}

// RoomHandler manages the room inventory.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(service roomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Param type query string false "Room type"
// @Param min_capacity query int false "Minimum capacity"
// @Param include_inactive query bool false "Include inactive rooms"
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	minCapacity, _, err := queryInt(c, "min_capacity", "minCapacity")
	if err != nil {
		response.Error(c, err)
		return
	}
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))
	rooms, err := h.service.List(c.Request.Context(), claims.SchoolID, models.RoomFilter{
		RoomType:        strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		MinCapacity:     minCapacity,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rooms)
}

// Get godoc
// @Summary Get room
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	room, err := h.service.Get(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, room)
}

// Create godoc
// @Summary Create room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.RoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid room payload"))
		return
	}
	room, err := h.service.Create(c.Request.Context(), claims.SchoolID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Update room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body dto.RoomRequest true "Room payload"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid room payload"))
		return
	}
	room, err := h.service.Update(c.Request.Context(), claims.SchoolID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, room)
}

// Deactivate godoc
// @Summary Deactivate room
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Deactivate(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	room, err := h.service.Deactivate(c.Request.Context(), claims.SchoolID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, room)
}
