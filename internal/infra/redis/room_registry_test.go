package redis

import (
	"testing"
	"time"

	"trivia-rooms/internal/app"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRoomRegistryMarksLiveness(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	registry := NewRoomRegistry(client, time.Minute)

	if !registry.Insert(app.NewRoom("ABC123", "general", nil)) {
		t.Fatalf("expected insert to succeed")
	}
	if !mr.Exists("room:live:ABC123") {
		t.Fatalf("expected liveness key in redis")
	}

	if _, ok := registry.Get("ABC123"); !ok {
		t.Fatalf("expected room to be retrievable")
	}
}

func TestRoomRegistryRejectsCollision(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	registry := NewRoomRegistry(client, 0)

	if !registry.Insert(app.NewRoom("ABC123", "general", nil)) {
		t.Fatalf("first insert should succeed")
	}
	if registry.Insert(app.NewRoom("ABC123", "tech", nil)) {
		t.Fatalf("colliding insert must report false")
	}
}
