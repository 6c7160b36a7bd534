package app

import (
	"sort"
	"strings"
	"sync"
	"time"

	"trivia-rooms/internal/domain"
)

// Room is the live in-memory state of one multiplayer room: a fixed question
// set plus the players who joined it. All mutation goes through its methods;
// the registry only hands out pointers.
type Room struct {
	code      string
	category  string
	questions []domain.Question
	createdAt time.Time
	now       func() time.Time

	mu          sync.RWMutex
	players     map[string]*playerState
	order       []string // usernames in join order, the leaderboard tie-break
	subscribers map[chan domain.Leaderboard]struct{}
}

type playerState struct {
	answers   map[int]domain.Answer
	submitted bool
}

func NewRoom(code, category string, questions []domain.Question) *Room {
	return NewRoomWithClock(code, category, questions, time.Now)
}

// NewRoomWithClock allows deterministic timestamps in tests.
func NewRoomWithClock(code, category string, questions []domain.Question, now func() time.Time) *Room {
	return &Room{
		code:        code,
		category:    category,
		questions:   questions,
		createdAt:   now(),
		now:         now,
		players:     make(map[string]*playerState),
		subscribers: make(map[chan domain.Leaderboard]struct{}),
	}
}

func (r *Room) Code() string { return r.code }

// Join registers a player and returns the username actually stored. Blank
// names become "Player". A taken name gets a random 3-digit suffix; the
// suffixed name is not re-checked, a collision there is accepted as
// astronomically unlikely.
func (r *Room) Join(desired string) (string, domain.Leaderboard) {
	username := strings.TrimSpace(desired)
	if username == "" {
		username = "Player"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.players[username]; taken {
		username = username + "_" + nameSuffix()
	}
	r.players[username] = &playerState{answers: make(map[int]domain.Answer)}
	r.order = append(r.order, username)
	return username, r.broadcastLocked()
}

// Submit grades the selections and overwrites the player's previous answers.
// Re-submission is last-write-wins; there is no double-submit guard.
func (r *Room) Submit(username string, selections []domain.Selection) (domain.Leaderboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[username]
	if !ok {
		return domain.Leaderboard{}, domain.ErrPlayerNotFound
	}
	player.answers = Grade(r.questions, selections)
	player.submitted = true
	return r.broadcastLocked(), nil
}

// Leaderboard returns the current standings.
func (r *Room) Leaderboard() domain.Leaderboard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.standingsLocked()
}

// Detail returns one graded Answer per question index for the given player.
// Unknown usernames and unanswered indexes yield placeholders with the
// correct answer filled in for review, never an error; callers use this for
// a room overview when no player is selected.
func (r *Room) Detail(username string) []domain.Answer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player := r.players[username]
	detail := make([]domain.Answer, 0, len(r.questions))
	for i, q := range r.questions {
		if player != nil {
			if a, ok := player.answers[i]; ok {
				detail = append(detail, a)
				continue
			}
		}
		detail = append(detail, domain.Answer{
			QuestionIndex: i,
			Question:      q.Text,
			Correct:       q.Answer,
			Selected:      "",
			IsCorrect:     false,
		})
	}
	return detail
}

// Snapshot returns a copy-safe view of the room.
func (r *Room) Snapshot() domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.Room{
		Code:      r.code,
		Category:  r.category,
		Questions: r.questions,
		Players:   append([]string(nil), r.order...),
		CreatedAt: r.createdAt,
	}
}

// Subscribe returns a channel fed with leaderboard updates, starting with the
// current standings. The caller must invoke cancel to avoid leaks.
func (r *Room) Subscribe() (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	r.mu.Lock()
	r.subscribers[ch] = struct{}{}
	initial := r.standingsLocked()
	r.mu.Unlock()

	ch <- initial

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subscribers[ch]; ok {
			delete(r.subscribers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel
}

func (r *Room) broadcastLocked() domain.Leaderboard {
	lb := r.standingsLocked()
	for ch := range r.subscribers {
		select {
		case ch <- lb:
		default:
			// Drop the stale update so a slow watcher never blocks the room.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
	return lb
}

func (r *Room) standingsLocked() domain.Leaderboard {
	rows := make([]domain.LeaderboardRow, 0, len(r.order))
	for _, username := range r.order {
		player := r.players[username]
		rows = append(rows, domain.LeaderboardRow{
			Username:  username,
			Score:     countCorrect(player.answers),
			Submitted: player.submitted,
		})
	}
	// Rows start in join order; the stable sort keeps that as the tie-break.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	return domain.Leaderboard{
		Code:      r.code,
		Rows:      rows,
		UpdatedAt: r.now(),
	}
}

func countCorrect(answers map[int]domain.Answer) int {
	score := 0
	for _, a := range answers {
		if a.IsCorrect {
			score++
		}
	}
	return score
}
