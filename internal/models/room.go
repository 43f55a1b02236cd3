package models

import (
	"time"

	"github.com/lib/pq"
)

// Room is a bookable teaching space.
type Room struct {
	ID          string          `db:"id" json:"id"`
	SchoolID    string          `db:"school_id" json:"school_id"`
	Name        string          `db:"name" json:"name"`
	Code        *string         `db:"code" json:"code,omitempty"`
	RoomType    string          `db:"room_type" json:"room_type"`
	Capacity    int             `db:"capacity" json:"capacity"`
	Equipment   pq.StringArray  `db:"equipment" json:"equipment"`
	IsAvailable bool            `db:"is_available" json:"is_available"`
	Status      LifecycleStatus `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Bookable reports whether entries may be placed in the room.
func (r *Room) Bookable() bool {
	return r.Status == StatusActive && r.IsAvailable
}

// RoomFilter narrows room listings.
type RoomFilter struct {
	RoomType        string
	MinCapacity     int
	IncludeInactive bool
}
