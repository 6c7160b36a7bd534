package domain

import "errors"

var (
	// ErrRoomNotFound is returned when a room code does not match any active room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrPlayerNotFound is returned when a user tries to act before joining a room.
	ErrPlayerNotFound = errors.New("player not found in room")
)
