package app

import "trivia-rooms/internal/domain"

// ScoreSelection reports whether a selection matches the correct answer.
// Comparison is exact and case-sensitive; an empty selection is never correct.
func ScoreSelection(correct, selected string) bool {
	return selected != "" && selected == correct
}

// AggregateScore counts the correct answers in a graded set.
func AggregateScore(answers []domain.Answer) int {
	score := 0
	for _, a := range answers {
		if a.IsCorrect {
			score++
		}
	}
	return score
}

// Grade evaluates raw selections against a room's question set. Selections
// with an out-of-range index are dropped; absent indexes stay unanswered.
func Grade(questions []domain.Question, selections []domain.Selection) map[int]domain.Answer {
	answers := make(map[int]domain.Answer, len(selections))
	for _, sel := range selections {
		if sel.QuestionIndex < 0 || sel.QuestionIndex >= len(questions) {
			continue
		}
		q := questions[sel.QuestionIndex]
		answers[sel.QuestionIndex] = domain.Answer{
			QuestionIndex: sel.QuestionIndex,
			Question:      q.Text,
			Correct:       q.Answer,
			Selected:      sel.Selected,
			IsCorrect:     ScoreSelection(q.Answer, sel.Selected),
		}
	}
	return answers
}

// ScoreSolo grades a single-player quiz. The client round-trips each
// question's correct answer, so no room state is involved; the same equality
// rule as room scoring applies. Unanswered questions count toward the
// declared total but never toward the score.
func ScoreSolo(total int, items []domain.SoloAnswer) domain.SoloResult {
	results := make([]domain.Answer, 0, len(items))
	for i, item := range items {
		results = append(results, domain.Answer{
			QuestionIndex: i,
			Question:      item.Question,
			Correct:       item.Correct,
			Selected:      item.Selected,
			IsCorrect:     ScoreSelection(item.Correct, item.Selected),
		})
	}
	if total < len(results) {
		total = len(results)
	}
	return domain.SoloResult{
		Results: results,
		Score:   AggregateScore(results),
		Total:   total,
	}
}
