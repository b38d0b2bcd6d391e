package service

import (
	"testing"
	"time"

	"github.com/lib/pq"

	"caseload-api/modules/calendar/entity"
)

func baseRecurringEvent(rt entity.RecurrenceType) *entity.CalendarEvent {
	return &entity.CalendarEvent{
		Title:                "session",
		Setting:              entity.SettingInPerson,
		StartAt:              time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:                time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		RecurrenceType:       rt,
		RecurrenceInterval:   2,
		RecurrenceDaysOfWeek: pq.Int64Array{1, 3},
		RecurrenceDayOfMonth: 15,
	}
}

func TestValidateRecurrenceClearsIrrelevantFields(t *testing.T) {
	t.Run("none clears everything", func(t *testing.T) {
		end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		ev := baseRecurringEvent(entity.RecurrenceNone)
		ev.RecurrenceEndDate = &end

		if appErr := ValidateRecurrence(ev); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if ev.RecurrenceInterval != 0 || ev.RecurrenceDaysOfWeek != nil ||
			ev.RecurrenceDayOfMonth != 0 || ev.RecurrenceEndDate != nil {
			t.Errorf("none should clear all recurrence fields: %+v", ev)
		}
	})

	t.Run("daily clears weekday set and day of month", func(t *testing.T) {
		ev := baseRecurringEvent(entity.RecurrenceDaily)
		if appErr := ValidateRecurrence(ev); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if ev.RecurrenceDaysOfWeek != nil || ev.RecurrenceDayOfMonth != 0 {
			t.Errorf("daily should clear weekly/monthly fields: %+v", ev)
		}
		if ev.RecurrenceInterval != 2 {
			t.Errorf("interval should survive, got %d", ev.RecurrenceInterval)
		}
	})

	t.Run("weekly clears day of month", func(t *testing.T) {
		ev := baseRecurringEvent(entity.RecurrenceWeekly)
		if appErr := ValidateRecurrence(ev); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if ev.RecurrenceDayOfMonth != 0 {
			t.Errorf("weekly should clear day of month, got %d", ev.RecurrenceDayOfMonth)
		}
		if len(ev.RecurrenceDaysOfWeek) != 2 {
			t.Errorf("weekday set should survive, got %v", ev.RecurrenceDaysOfWeek)
		}
	})

	t.Run("monthly clears weekday set", func(t *testing.T) {
		ev := baseRecurringEvent(entity.RecurrenceMonthly)
		if appErr := ValidateRecurrence(ev); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if ev.RecurrenceDaysOfWeek != nil {
			t.Errorf("monthly should clear weekday set, got %v", ev.RecurrenceDaysOfWeek)
		}
		if ev.RecurrenceDayOfMonth != 15 {
			t.Errorf("day of month should survive, got %d", ev.RecurrenceDayOfMonth)
		}
	})
}

func TestValidateRecurrenceRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.CalendarEvent)
	}{
		{"weekly with empty weekday set", func(ev *entity.CalendarEvent) {
			ev.RecurrenceType = entity.RecurrenceWeekly
			ev.RecurrenceDaysOfWeek = nil
		}},
		{"weekly with out-of-range weekday", func(ev *entity.CalendarEvent) {
			ev.RecurrenceType = entity.RecurrenceWeekly
			ev.RecurrenceDaysOfWeek = pq.Int64Array{7}
		}},
		{"monthly with day zero", func(ev *entity.CalendarEvent) {
			ev.RecurrenceType = entity.RecurrenceMonthly
			ev.RecurrenceDayOfMonth = 0
		}},
		{"monthly with day 32", func(ev *entity.CalendarEvent) {
			ev.RecurrenceType = entity.RecurrenceMonthly
			ev.RecurrenceDayOfMonth = 32
		}},
		{"unknown type", func(ev *entity.CalendarEvent) {
			ev.RecurrenceType = "fortnightly"
		}},
		{"end date before start", func(ev *entity.CalendarEvent) {
			ev.RecurrenceType = entity.RecurrenceDaily
			end := ev.StartAt.AddDate(0, 0, -1)
			ev.RecurrenceEndDate = &end
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := baseRecurringEvent(entity.RecurrenceDaily)
			tc.mutate(ev)
			if appErr := ValidateRecurrence(ev); appErr == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateRecurrenceEndDateOnStartDay(t *testing.T) {
	ev := baseRecurringEvent(entity.RecurrenceDaily)
	// End date at midnight of the start day: same calendar date, allowed.
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	ev.RecurrenceEndDate = &end
	if appErr := ValidateRecurrence(ev); appErr != nil {
		t.Errorf("end date on the start day should be valid: %v", appErr)
	}
}

func TestValidateRecurrenceDefaultsInterval(t *testing.T) {
	ev := baseRecurringEvent(entity.RecurrenceDaily)
	ev.RecurrenceInterval = 0
	if appErr := ValidateRecurrence(ev); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if ev.RecurrenceInterval != 1 {
		t.Errorf("interval should default to 1, got %d", ev.RecurrenceInterval)
	}
}

func TestClampDayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
		want  int
	}{
		{2026, time.January, 31, 31},
		{2026, time.April, 31, 30},
		{2026, time.February, 31, 28},
		{2028, time.February, 31, 29}, // leap year
		{2026, time.February, 15, 15},
	}
	for _, tc := range tests {
		if got := ClampDayOfMonth(tc.year, tc.month, tc.day); got != tc.want {
			t.Errorf("ClampDayOfMonth(%d, %v, %d) = %d, want %d", tc.year, tc.month, tc.day, got, tc.want)
		}
	}
}
