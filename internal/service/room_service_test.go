package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type memRoomRepo struct {
	stubRooms
	seq int
}

func (m *memRoomRepo) Create(ctx context.Context, room *models.Room) error {
	m.seq++
	room.ID = fmt.Sprintf("room-%d", m.seq)
	room.Status = models.StatusActive
	m.items[room.ID] = *room
	return nil
}

func (m *memRoomRepo) Update(ctx context.Context, room *models.Room) error {
	if _, ok := m.items[room.ID]; !ok {
		return sql.ErrNoRows
	}
	m.items[room.ID] = *room
	return nil
}

func (m *memRoomRepo) Deactivate(ctx context.Context, schoolID, id string) error {
	room, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	room.Status = models.StatusInactive
	m.items[id] = room
	return nil
}

func TestRoomServiceLifecycle(t *testing.T) {
	repo := &memRoomRepo{stubRooms: stubRooms{items: map[string]models.Room{}}}
	svc := NewRoomService(repo, nil, nil)

	room, err := svc.Create(context.Background(), "school-1", dto.RoomRequest{Name: " Physics Lab ", RoomType: "lab", Capacity: 24})
	require.NoError(t, err)
	assert.Equal(t, "Physics Lab", room.Name)
	assert.Equal(t, "LAB", room.RoomType)
	assert.True(t, room.IsAvailable)
	assert.NotNil(t, room.Equipment)

	unavailable := false
	updated, err := svc.Update(context.Background(), "school-1", room.ID, dto.RoomRequest{Name: "Physics Lab", RoomType: "LAB", Capacity: 20, IsAvailable: &unavailable, Equipment: []string{"projector"}})
	require.NoError(t, err)
	assert.False(t, updated.Bookable())
	assert.Equal(t, []string{"projector"}, []string(updated.Equipment))

	retired, err := svc.Deactivate(context.Background(), "school-1", room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, retired.Status)

	rooms, err := svc.List(context.Background(), "school-1", models.RoomFilter{})
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRoomServiceValidation(t *testing.T) {
	repo := &memRoomRepo{stubRooms: stubRooms{items: map[string]models.Room{}}}
	svc := NewRoomService(repo, nil, nil)

	_, err := svc.Create(context.Background(), "school-1", dto.RoomRequest{RoomType: "LAB"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.List(context.Background(), "school-1", models.RoomFilter{MinCapacity: -1})
	require.Error(t, err)

	_, err = svc.Deactivate(context.Background(), "school-1", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
