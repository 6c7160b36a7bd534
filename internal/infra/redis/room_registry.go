package redis

import (
	"context"
	"sync"
	"time"

	"trivia-rooms/internal/app"
	"github.com/redis/go-redis/v9"
)

// RoomRegistry is a Redis-aware implementation of app.RoomRegistry.
// Notes:
//   - Room state itself stays in a local in-memory map so the in-process
//     lock and broadcast logic is reused unchanged.
//   - Redis marks room liveness, which makes active codes observable from
//     outside the process (and could be extended to cross-instance routing).
//   - A zero TTL keeps the marker forever, matching the in-process
//     rooms-are-never-deleted behavior.
type RoomRegistry struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	rooms  map[string]*app.Room
}

func NewRoomRegistry(client *redis.Client, ttl time.Duration) *RoomRegistry {
	return &RoomRegistry{
		client: client,
		ttl:    ttl,
		rooms:  make(map[string]*app.Room),
	}
}

func (r *RoomRegistry) Insert(room *app.Room) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[room.Code()]; exists {
		return false
	}
	r.rooms[room.Code()] = room
	// best-effort liveness marker
	_ = r.client.Set(context.Background(), r.key(room.Code()), "1", r.ttl).Err()
	return true
}

func (r *RoomRegistry) Get(code string) (*app.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	return room, ok
}

func (r *RoomRegistry) key(code string) string {
	return "room:live:" + code
}
