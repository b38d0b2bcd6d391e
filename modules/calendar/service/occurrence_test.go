package service

import (
	"testing"
	"time"

	"github.com/lib/pq"

	"caseload-api/modules/calendar/entity"
)

func TestPreviewOccurrencesNonRecurring(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ev := &entity.CalendarEvent{StartAt: start, RecurrenceType: entity.RecurrenceNone}

	got, appErr := PreviewOccurrences(ev, start.AddDate(0, 0, -1), 10)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(got) != 1 || !got[0].Equal(start) {
		t.Errorf("want just the start time, got %v", got)
	}

	// A past one-off previews as empty.
	got, appErr = PreviewOccurrences(ev, start.AddDate(0, 0, 1), 10)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(got) != 0 {
		t.Errorf("past one-off should preview empty, got %v", got)
	}
}

func TestPreviewOccurrencesWeekly(t *testing.T) {
	// Tuesday March 10 2026, repeating Mon+Wed.
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ev := &entity.CalendarEvent{
		StartAt:              start,
		RecurrenceType:       entity.RecurrenceWeekly,
		RecurrenceInterval:   1,
		RecurrenceDaysOfWeek: pq.Int64Array{1, 3}, // Mon, Wed
	}

	got, appErr := PreviewOccurrences(ev, start, 4)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(got) != 4 {
		t.Fatalf("want 4 occurrences, got %d", len(got))
	}
	for _, occ := range got {
		wd := occ.Weekday()
		if wd != time.Monday && wd != time.Wednesday {
			t.Errorf("occurrence %v falls on %v, want Mon or Wed", occ, wd)
		}
		if occ.Hour() != 9 {
			t.Errorf("occurrence %v should keep the 09:00 start", occ)
		}
	}
	// First match after Tue Mar 10 is Wed Mar 11.
	if got[0].Day() != 11 {
		t.Errorf("first occurrence should be March 11, got %v", got[0])
	}
}

func TestPreviewOccurrencesMonthlyClamp(t *testing.T) {
	// Day 31 from the end of January: short months clamp to their last day.
	start := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	ev := &entity.CalendarEvent{
		StartAt:              start,
		RecurrenceType:       entity.RecurrenceMonthly,
		RecurrenceInterval:   1,
		RecurrenceDayOfMonth: 31,
	}

	got, appErr := PreviewOccurrences(ev, start, 4)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(got) != 4 {
		t.Fatalf("want 4 occurrences, got %d", len(got))
	}

	wantDays := []struct {
		month time.Month
		day   int
	}{
		{time.January, 31},
		{time.February, 28},
		{time.March, 31},
		{time.April, 30},
	}
	for i, w := range wantDays {
		if got[i].Month() != w.month || got[i].Day() != w.day {
			t.Errorf("occurrence %d: want %v %d, got %v %d", i, w.month, w.day, got[i].Month(), got[i].Day())
		}
	}
}

func TestPreviewOccurrencesEndDateInclusive(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	ev := &entity.CalendarEvent{
		StartAt:            start,
		RecurrenceType:     entity.RecurrenceDaily,
		RecurrenceInterval: 1,
		RecurrenceEndDate:  &end,
	}

	got, appErr := PreviewOccurrences(ev, start, 10)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	// March 10, 11 and 12: the end date itself still occurs.
	if len(got) != 3 {
		t.Fatalf("want 3 occurrences through the end date, got %d: %v", len(got), got)
	}
	if got[2].Day() != 12 {
		t.Errorf("last occurrence should fall on the end date, got %v", got[2])
	}
}

func TestPreviewOccurrencesInterval(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ev := &entity.CalendarEvent{
		StartAt:            start,
		RecurrenceType:     entity.RecurrenceDaily,
		RecurrenceInterval: 3,
	}

	got, appErr := PreviewOccurrences(ev, start, 3)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	wantDays := []int{10, 13, 16}
	for i, d := range wantDays {
		if got[i].Day() != d {
			t.Errorf("occurrence %d: want day %d, got %v", i, d, got[i])
		}
	}
}
