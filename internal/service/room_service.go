package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type roomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Deactivate(ctx context.Context, schoolID, id string) error
	FindByID(ctx context.Context, schoolID, id string) (*models.Room, error)
	List(ctx context.Context, schoolID string, filter models.RoomFilter) ([]models.Room, error)
}

// RoomService manages the room inventory used by entries and availability queries.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs the room service.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: newSchedulingValidator(validate), logger: logger}
}

// Create registers a room. Rooms are available unless the request says otherwise.
func (s *RoomService) Create(ctx context.Context, schoolID string, req dto.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid room payload")
	}
	room := &models.Room{SchoolID: schoolID, IsAvailable: true}
	applyRoomRequest(room, req)
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	s.logger.Info("room created", zap.String("school_id", schoolID), zap.String("room_id", room.ID))
	return room, nil
}

// Update replaces the mutable attributes of a room.
func (s *RoomService) Update(ctx context.Context, schoolID, id string, req dto.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid room payload")
	}
	room, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	applyRoomRequest(room, req)
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, lookupError(err, "room not found", "failed to update room")
	}
	return room, nil
}

// Deactivate retires a room. Existing entries keep their reference, new
// placements are refused.
func (s *RoomService) Deactivate(ctx context.Context, schoolID, id string) (*models.Room, error) {
	if err := s.repo.Deactivate(ctx, schoolID, id); err != nil {
		return nil, lookupError(err, "room not found", "failed to deactivate room")
	}
	s.logger.Info("room deactivated", zap.String("school_id", schoolID), zap.String("room_id", id))
	return s.Get(ctx, schoolID, id)
}

// Get returns one room.
func (s *RoomService) Get(ctx context.Context, schoolID, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, schoolID, id)
	if err != nil {
		return nil, lookupError(err, "room not found", "failed to load room")
	}
	return room, nil
}

// List returns rooms matching filter.
func (s *RoomService) List(ctx context.Context, schoolID string, filter models.RoomFilter) ([]models.Room, error) {
	if filter.MinCapacity < 0 {
		return nil, invalid("min_capacity must not be negative")
	}
	rooms, err := s.repo.List(ctx, schoolID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

func applyRoomRequest(room *models.Room, req dto.RoomRequest) {
	room.Name = strings.TrimSpace(req.Name)
	room.Code = req.Code
	room.RoomType = strings.ToUpper(strings.TrimSpace(req.RoomType))
	room.Capacity = req.Capacity
	room.Equipment = pq.StringArray(req.Equipment)
	if room.Equipment == nil {
		room.Equipment = pq.StringArray{}
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
}
