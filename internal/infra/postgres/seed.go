package postgres

import (
	"context"

	"trivia-rooms/internal/domain"
	"github.com/uptrace/bun"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID            int64    `bun:"id,pk,autoincrement"`
	Category      string   `bun:"category,notnull"`
	Question      string   `bun:"question,notnull"`
	CorrectAnswer string   `bun:"correct_answer,notnull"`
	Incorrect     []string `bun:"incorrect,type:jsonb"`
}

// SeedQuestions stores fetched questions in the bank under the category.
// The correct answer is split out of the option list; fetches re-shuffle.
func SeedQuestions(ctx context.Context, db *bun.DB, category string, questions []domain.Question) (int, error) {
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, questionRow{
			Category:      category,
			Question:      q.Text,
			CorrectAnswer: q.Answer,
			Incorrect:     distractors(q),
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if _, err := db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// distractors returns the options minus one occurrence of the correct answer.
func distractors(q domain.Question) []string {
	out := make([]string, 0, len(q.Options))
	dropped := false
	for _, opt := range q.Options {
		if !dropped && opt == q.Answer {
			dropped = true
			continue
		}
		out = append(out, opt)
	}
	return out
}
