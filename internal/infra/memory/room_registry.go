package memory

import (
	"sync"

	"trivia-rooms/internal/app"
)

// RoomRegistry is an in-memory implementation of app.RoomRegistry. Rooms live
// for the lifetime of the process; there is no eviction.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*app.Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*app.Room),
	}
}

func (r *RoomRegistry) Insert(room *app.Room) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[room.Code()]; exists {
		return false
	}
	r.rooms[room.Code()] = room
	return true
}

func (r *RoomRegistry) Get(code string) (*app.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	return room, ok
}
