package service

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"caseload-api/modules/activity/entity"
)

// ScoreResult is the outcome of grading one session submission.
type ScoreResult struct {
	Answers      []entity.SessionAnswer
	CorrectCount int
	TotalCount   int
	Percent      int
}

// normalizeAnswer makes comparison forgiving of case and surrounding
// whitespace. "Ball " matches "ball".
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ScoreAnswers grades a submission against an activity's items. Every item
// produces a record; items the student skipped count as wrong with an empty
// given answer. Unknown item IDs in the submission are ignored. The percent
// is rounded and 0 when the activity has no items. Pure.
func ScoreAnswers(items []entity.ActivityItem, given map[uuid.UUID]string) ScoreResult {
	result := ScoreResult{
		Answers:    make([]entity.SessionAnswer, 0, len(items)),
		TotalCount: len(items),
	}

	for _, item := range items {
		answer := entity.SessionAnswer{
			ItemID: item.ID,
			Given:  given[item.ID],
		}
		if normalizeAnswer(answer.Given) != "" &&
			normalizeAnswer(answer.Given) == normalizeAnswer(item.ExpectedAnswer) {
			answer.Correct = true
			result.CorrectCount++
		}
		result.Answers = append(result.Answers, answer)
	}

	if result.TotalCount > 0 {
		result.Percent = int(math.Round(100 * float64(result.CorrectCount) / float64(result.TotalCount)))
	}
	return result
}
