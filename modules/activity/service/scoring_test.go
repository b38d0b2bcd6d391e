package service

import (
	"testing"

	"github.com/google/uuid"

	"caseload-api/modules/activity/entity"
)

func item(prompt, expected string) entity.ActivityItem {
	return entity.ActivityItem{
		ID:             uuid.NewMD5(uuid.NameSpaceOID, []byte(prompt)),
		Prompt:         prompt,
		ExpectedAnswer: expected,
	}
}

func TestScoreAnswers(t *testing.T) {
	items := []entity.ActivityItem{
		item("q1", "ball"),
		item("q2", "airplane"),
		item("q3", "ice cream"),
		item("q4", "shoe"),
	}

	given := map[uuid.UUID]string{
		items[0].ID: "ball",
		items[1].ID: "  Airplane ", // case and whitespace forgiven
		items[2].ID: "icecream",    // wrong
		// q4 skipped
	}

	result := ScoreAnswers(items, given)
	if result.TotalCount != 4 {
		t.Errorf("total: want 4, got %d", result.TotalCount)
	}
	if result.CorrectCount != 2 {
		t.Errorf("correct: want 2, got %d", result.CorrectCount)
	}
	if result.Percent != 50 {
		t.Errorf("percent: want 50, got %d", result.Percent)
	}
	if len(result.Answers) != 4 {
		t.Fatalf("every item should produce a record, got %d", len(result.Answers))
	}

	wantCorrect := []bool{true, true, false, false}
	for i, w := range wantCorrect {
		if result.Answers[i].Correct != w {
			t.Errorf("item %d: want correct=%v, got %v", i, w, result.Answers[i].Correct)
		}
		if result.Answers[i].ItemID != items[i].ID {
			t.Errorf("item %d: answer record not aligned to item order", i)
		}
	}
	if result.Answers[3].Given != "" {
		t.Errorf("skipped item should record an empty answer, got %q", result.Answers[3].Given)
	}
}

func TestScoreAnswersNoItems(t *testing.T) {
	result := ScoreAnswers(nil, nil)
	if result.TotalCount != 0 || result.CorrectCount != 0 || result.Percent != 0 {
		t.Errorf("empty activity should score all zeros: %+v", result)
	}
}

func TestScoreAnswersEmptyGivenNeverMatchesEmptyExpected(t *testing.T) {
	items := []entity.ActivityItem{item("q1", "")}
	result := ScoreAnswers(items, map[uuid.UUID]string{items[0].ID: ""})
	if result.CorrectCount != 0 {
		t.Error("an empty answer should never count as correct")
	}
}

func TestScoreAnswersIgnoresUnknownItemIDs(t *testing.T) {
	items := []entity.ActivityItem{item("q1", "cat")}
	given := map[uuid.UUID]string{
		items[0].ID: "cat",
		uuid.New():  "dog", // not part of the activity
	}
	result := ScoreAnswers(items, given)
	if result.TotalCount != 1 || result.CorrectCount != 1 || result.Percent != 100 {
		t.Errorf("unknown item IDs should not affect scoring: %+v", result)
	}
}

func TestScoreAnswersRounding(t *testing.T) {
	items := []entity.ActivityItem{
		item("q1", "a"),
		item("q2", "b"),
		item("q3", "c"),
	}
	given := map[uuid.UUID]string{
		items[0].ID: "a",
		items[1].ID: "b",
	}
	result := ScoreAnswers(items, given)
	// 2/3 rounds to 67.
	if result.Percent != 67 {
		t.Errorf("percent: want 67, got %d", result.Percent)
	}
}
