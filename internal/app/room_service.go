package app

import (
	"context"
	"log"

	"trivia-rooms/internal/domain"
)

// DefaultCategory substitutes for any category the service does not recognize.
const DefaultCategory = "general"

// Categories lists the supported trivia categories.
var Categories = []string{"general", "tech", "movies"}

// NormalizeCategory maps unknown category keys to the default instead of
// rejecting them.
func NormalizeCategory(raw string) string {
	for _, c := range Categories {
		if c == raw {
			return c
		}
	}
	return DefaultCategory
}

// RoomRegistry abstracts how live rooms are stored (in-memory, Redis-mirrored).
type RoomRegistry interface {
	// Insert registers the room under its code, reporting false on a
	// code collision so the caller can regenerate.
	Insert(room *Room) bool
	Get(code string) (*Room, bool)
}

// QuestionSource fetches a question set for a category. Implementations are
// expected to bound their own I/O; a failed or empty fetch is a valid outcome
// and yields a room with no questions.
type QuestionSource interface {
	Fetch(ctx context.Context, category string, amount int) ([]domain.Question, error)
}

const defaultAmount = 10

// RoomService contains the multiplayer room use cases.
type RoomService struct {
	rooms  RoomRegistry
	source QuestionSource
	amount int
}

func NewRoomService(rooms RoomRegistry, source QuestionSource, amount int) *RoomService {
	if amount <= 0 {
		amount = defaultAmount
	}
	return &RoomService{rooms: rooms, source: source, amount: amount}
}

// CreateRoom fetches a question set for the category and registers a new room
// under a fresh unique code. Unknown categories fall back to the default and
// question-source failures degrade to an empty set, so creation itself never
// fails for user input.
func (s *RoomService) CreateRoom(ctx context.Context, category string) domain.Room {
	category = NormalizeCategory(category)
	questions, err := s.source.Fetch(ctx, category, s.amount)
	if err != nil {
		log.Printf("question fetch for %q failed, creating empty room: %v", category, err)
		questions = nil
	}

	for {
		room := NewRoom(GenerateCode(), category, questions)
		if s.rooms.Insert(room) {
			return room.Snapshot()
		}
		// Code collision: 1 in 36^6 per attempt, but handled structurally.
	}
}

// GetRoom returns a snapshot of the room.
func (s *RoomService) GetRoom(code string) (domain.Room, error) {
	room, ok := s.rooms.Get(code)
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

// Join adds a player to the room and returns the username actually stored,
// which may carry a disambiguating suffix.
func (s *RoomService) Join(code, desired string) (string, error) {
	room, ok := s.rooms.Get(code)
	if !ok {
		return "", domain.ErrRoomNotFound
	}
	username, _ := room.Join(desired)
	return username, nil
}

// Submit grades and records a player's answers. Last write wins on
// re-submission.
func (s *RoomService) Submit(code, username string, selections []domain.Selection) error {
	room, ok := s.rooms.Get(code)
	if !ok {
		return domain.ErrRoomNotFound
	}
	_, err := room.Submit(username, selections)
	return err
}

// Leaderboard returns the room standings, score descending with join-order
// tie-break.
func (s *RoomService) Leaderboard(code string) (domain.Leaderboard, error) {
	room, ok := s.rooms.Get(code)
	if !ok {
		return domain.Leaderboard{}, domain.ErrRoomNotFound
	}
	return room.Leaderboard(), nil
}

// PlayerDetail returns one answer per question for the player, with
// placeholders for anything unanswered or for an unknown username.
func (s *RoomService) PlayerDetail(code, username string) ([]domain.Answer, error) {
	room, ok := s.rooms.Get(code)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room.Detail(username), nil
}

// Watch returns a channel that receives leaderboard updates for a room.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *RoomService) Watch(code string) (<-chan domain.Leaderboard, func(), error) {
	room, ok := s.rooms.Get(code)
	if !ok {
		return nil, nil, domain.ErrRoomNotFound
	}
	ch, cancel := room.Subscribe()
	return ch, cancel, nil
}
