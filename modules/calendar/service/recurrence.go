package service

import (
	"fmt"
	"time"

	"caseload-api/core/errors"
	"caseload-api/modules/calendar/entity"
)

// ValidateRecurrence checks the recurrence descriptor on an event and clears
// the fields that do not apply to its recurrence type, so stale values from a
// previous type never survive an edit.
func ValidateRecurrence(ev *entity.CalendarEvent) *errors.AppError {
	if ev.RecurrenceType == "" {
		ev.RecurrenceType = entity.RecurrenceNone
	}

	switch ev.RecurrenceType {
	case entity.RecurrenceNone:
		ev.RecurrenceInterval = 0
		ev.RecurrenceDaysOfWeek = nil
		ev.RecurrenceDayOfMonth = 0
		ev.RecurrenceEndDate = nil
		return nil

	case entity.RecurrenceDaily:
		ev.RecurrenceDaysOfWeek = nil
		ev.RecurrenceDayOfMonth = 0

	case entity.RecurrenceWeekly:
		ev.RecurrenceDayOfMonth = 0
		if len(ev.RecurrenceDaysOfWeek) == 0 {
			return errors.NewAppError(errors.ErrInvalidInput, "Weekly recurrence needs at least one weekday", nil)
		}
		for _, d := range ev.RecurrenceDaysOfWeek {
			if d < 0 || d > 6 {
				return errors.NewAppError(errors.ErrInvalidInput,
					fmt.Sprintf("Weekday index %d out of range 0-6", d), nil)
			}
		}

	case entity.RecurrenceMonthly:
		ev.RecurrenceDaysOfWeek = nil
		if ev.RecurrenceDayOfMonth < 1 || ev.RecurrenceDayOfMonth > 31 {
			return errors.NewAppError(errors.ErrInvalidInput, "Day of month must be between 1 and 31", nil)
		}

	default:
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Unknown recurrence type %q", ev.RecurrenceType), nil)
	}

	if ev.RecurrenceInterval < 1 {
		ev.RecurrenceInterval = 1
	}

	if ev.RecurrenceEndDate != nil {
		endDay := dateOnly(*ev.RecurrenceEndDate)
		startDay := dateOnly(ev.StartAt)
		if endDay.Before(startDay) {
			return errors.NewAppError(errors.ErrInvalidInput, "Recurrence end date is before the event start", nil)
		}
	}
	return nil
}

// ClampDayOfMonth resolves a requested day within a month that may be shorter.
// Day 31 in a 30-day month yields 30. This is the documented policy for
// monthly recurrences; occurrences are never skipped.
func ClampDayOfMonth(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
