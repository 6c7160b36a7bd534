package domain

import "time"

// Question is a single multiple-choice trivia question. Options arrive
// pre-shuffled from the source and their order is fixed for the lifetime
// of the room, since selections are matched against them on display.
type Question struct {
	Text    string   `json:"question"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
}

// Selection is a player's raw pick for one question, as sent by clients.
type Selection struct {
	QuestionIndex int    `json:"questionIndex"`
	Selected      string `json:"selected"`
}

// Answer is the graded record for one question. Explicit fields replace the
// legacy delimiter-joined encoding, so question text may contain anything.
type Answer struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	Correct       string `json:"correct"`
	Selected      string `json:"selected"` // empty means unanswered
	IsCorrect     bool   `json:"isCorrect"`
}

// Room is a read-only snapshot of a room's state.
type Room struct {
	Code      string     `json:"code"`
	Category  string     `json:"category"`
	Questions []Question `json:"questions"`
	Players   []string   `json:"players"` // join order
	CreatedAt time.Time  `json:"createdAt"`
}

// LeaderboardRow is one player's standing in a room.
type LeaderboardRow struct {
	Username  string `json:"username"`
	Score     int    `json:"score"`
	Submitted bool   `json:"submitted"`
}

// Leaderboard captures the ordered scoreboard for a room: score descending,
// ties broken by join order.
type Leaderboard struct {
	Code      string           `json:"code"`
	Rows      []LeaderboardRow `json:"rows"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// SoloAnswer is a self-scored single-player item. There is no server-side
// room to consult, so the client round-trips the expected correct answer
// alongside its selection.
type SoloAnswer struct {
	Question string `json:"question"`
	Correct  string `json:"correct"`
	Selected string `json:"selected"`
}

// SoloResult is the outcome of scoring a single-player quiz. Total reflects
// the declared question count, which may exceed the number of answered items.
type SoloResult struct {
	Results []Answer `json:"results"`
	Score   int      `json:"score"`
	Total   int      `json:"total"`
}
