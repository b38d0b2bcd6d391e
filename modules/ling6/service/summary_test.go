package service

import (
	"testing"

	"caseload-api/modules/ling6/entity"
)

func trial(sound entity.Sound, response entity.Response) entity.Ling6Trial {
	return entity.Ling6Trial{Sound: sound, Response: response}
}

func soundStatus(t *testing.T, summary entity.Summary, sound entity.Sound) entity.SoundResult {
	t.Helper()
	for _, r := range summary.Sounds {
		if r.Sound == sound {
			return r
		}
	}
	t.Fatalf("sound %q missing from summary", sound)
	return entity.SoundResult{}
}

func TestComputeSummaryEmpty(t *testing.T) {
	summary := ComputeSummary(nil)

	if len(summary.Sounds) != 6 {
		t.Fatalf("summary should always cover all six sounds, got %d", len(summary.Sounds))
	}
	for _, r := range summary.Sounds {
		if r.Status != entity.StatusNotTested {
			t.Errorf("sound %q: want not_tested, got %q", r.Sound, r.Status)
		}
	}
	if summary.TestedCount != 0 || summary.DetectedPct != 0 || summary.IdentifiedPct != 0 {
		t.Errorf("empty session should report zeros: %+v", summary)
	}
}

func TestComputeSummaryBestResponseWins(t *testing.T) {
	orders := [][]entity.Ling6Trial{
		{
			trial(entity.SoundAH, entity.ResponseNoResponse),
			trial(entity.SoundAH, entity.ResponseIdentified),
			trial(entity.SoundAH, entity.ResponseDetected),
		},
		{
			trial(entity.SoundAH, entity.ResponseIdentified),
			trial(entity.SoundAH, entity.ResponseNoResponse),
			trial(entity.SoundAH, entity.ResponseDetected),
		},
		{
			trial(entity.SoundAH, entity.ResponseDetected),
			trial(entity.SoundAH, entity.ResponseNoResponse),
			trial(entity.SoundAH, entity.ResponseIdentified),
		},
	}

	for i, trials := range orders {
		summary := ComputeSummary(trials)
		r := soundStatus(t, summary, entity.SoundAH)
		if r.Status != entity.StatusIdentified {
			t.Errorf("order %d: best response should win regardless of order, got %q", i, r.Status)
		}
		if r.Trials != 3 {
			t.Errorf("order %d: want 3 trials, got %d", i, r.Trials)
		}
	}
}

func TestComputeSummaryPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		responses []entity.Response
		want      entity.SoundStatus
	}{
		{"identified beats detected", []entity.Response{entity.ResponseDetected, entity.ResponseIdentified}, entity.StatusIdentified},
		{"detected beats incorrect", []entity.Response{entity.ResponseIncorrect, entity.ResponseDetected}, entity.StatusDetected},
		{"incorrect beats no_response", []entity.Response{entity.ResponseNoResponse, entity.ResponseIncorrect}, entity.StatusIncorrect},
		{"only no_response stays", []entity.Response{entity.ResponseNoResponse}, entity.StatusNoResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trials := make([]entity.Ling6Trial, 0, len(tc.responses))
			for _, resp := range tc.responses {
				trials = append(trials, trial(entity.SoundSH, resp))
			}
			summary := ComputeSummary(trials)
			if got := soundStatus(t, summary, entity.SoundSH).Status; got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestComputeSummaryCountsAndPercentages(t *testing.T) {
	// Four sounds tested: identified, identified, detected, no_response.
	trials := []entity.Ling6Trial{
		trial(entity.SoundM, entity.ResponseIdentified),
		trial(entity.SoundOO, entity.ResponseIdentified),
		trial(entity.SoundAH, entity.ResponseDetected),
		trial(entity.SoundEE, entity.ResponseNoResponse),
	}
	summary := ComputeSummary(trials)

	if summary.TestedCount != 4 {
		t.Errorf("tested: want 4, got %d", summary.TestedCount)
	}
	// Identified implies detected.
	if summary.DetectedCount != 3 {
		t.Errorf("detected: want 3, got %d", summary.DetectedCount)
	}
	if summary.IdentifiedCount != 2 {
		t.Errorf("identified: want 2, got %d", summary.IdentifiedCount)
	}
	if summary.DetectedPct != 75 {
		t.Errorf("detected pct: want 75, got %d", summary.DetectedPct)
	}
	if summary.IdentifiedPct != 50 {
		t.Errorf("identified pct: want 50, got %d", summary.IdentifiedPct)
	}

	// Untested sounds stay not_tested.
	if got := soundStatus(t, summary, entity.SoundS).Status; got != entity.StatusNotTested {
		t.Errorf("untested sound should be not_tested, got %q", got)
	}
}

func TestComputeSummaryRounding(t *testing.T) {
	// 1 of 3 detected = 33.33 rounds to 33; 2 of 3 = 66.67 rounds to 67.
	trials := []entity.Ling6Trial{
		trial(entity.SoundM, entity.ResponseDetected),
		trial(entity.SoundOO, entity.ResponseDetected),
		trial(entity.SoundAH, entity.ResponseNoResponse),
	}
	summary := ComputeSummary(trials)
	if summary.DetectedPct != 67 {
		t.Errorf("detected pct: want 67, got %d", summary.DetectedPct)
	}
	if summary.IdentifiedPct != 0 {
		t.Errorf("identified pct: want 0, got %d", summary.IdentifiedPct)
	}
}

func TestComputeSummaryIgnoresUnknownResponse(t *testing.T) {
	trials := []entity.Ling6Trial{
		{Sound: entity.SoundM, Response: "shrug"},
	}
	summary := ComputeSummary(trials)
	if got := soundStatus(t, summary, entity.SoundM).Status; got != entity.StatusNotTested {
		t.Errorf("unknown response should not count as tested, got %q", got)
	}
	if summary.TestedCount != 0 {
		t.Errorf("tested: want 0, got %d", summary.TestedCount)
	}
}

func TestComputeSummarySoundOrder(t *testing.T) {
	summary := ComputeSummary(nil)
	for i, want := range entity.AllSounds {
		if summary.Sounds[i].Sound != want {
			t.Errorf("position %d: want %q, got %q", i, want, summary.Sounds[i].Sound)
		}
	}
}
