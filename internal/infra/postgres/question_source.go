package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"trivia-rooms/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionSource serves question sets from an operator-seeded Postgres bank,
// for deployments that should not call the trivia provider at room-creation
// time. Options are re-shuffled on every fetch so each room gets its own
// ordering.
type QuestionSource struct {
	pool *pgxpool.Pool
}

func NewQuestionSource(pool *pgxpool.Pool) *QuestionSource {
	return &QuestionSource{pool: pool}
}

func (s *QuestionSource) Fetch(ctx context.Context, category string, amount int) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT question, correct_answer, incorrect FROM questions WHERE category=$1 ORDER BY random() LIMIT $2`,
		category, amount)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var text, correct string
		var rawIncorrect []byte
		if err := rows.Scan(&text, &correct, &rawIncorrect); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var incorrect []string
		if err := json.Unmarshal(rawIncorrect, &incorrect); err != nil {
			return nil, fmt.Errorf("unmarshal distractors: %w", err)
		}
		options := append(incorrect, correct)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		questions = append(questions, domain.Question{
			Text:    text,
			Answer:  correct,
			Options: options,
		})
	}
	return questions, rows.Err()
}
