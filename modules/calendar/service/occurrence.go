package service

import (
	"time"

	"github.com/teambition/rrule-go"

	"caseload-api/core/errors"
	"caseload-api/modules/calendar/entity"
)

// Occurrence preview is a read-only projection of a recurrence descriptor
// into upcoming start times. Nothing here is persisted; saved events stay
// single rows and the conflict logic never consumes preview output.

var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// PreviewOccurrences expands the event's recurrence descriptor into at most
// limit upcoming start times on or after from. An event without recurrence
// previews as just its own start time.
func PreviewOccurrences(ev *entity.CalendarEvent, from time.Time, limit int) ([]time.Time, *errors.AppError) {
	if limit <= 0 {
		limit = 10
	}
	if ev.RecurrenceType == entity.RecurrenceNone || ev.RecurrenceType == "" {
		if ev.StartAt.Before(from) {
			return []time.Time{}, nil
		}
		return []time.Time{ev.StartAt}, nil
	}

	opt := rrule.ROption{
		Dtstart:  ev.StartAt,
		Interval: ev.RecurrenceInterval,
	}
	if opt.Interval < 1 {
		opt.Interval = 1
	}

	switch ev.RecurrenceType {
	case entity.RecurrenceDaily:
		opt.Freq = rrule.DAILY

	case entity.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range ev.RecurrenceDaysOfWeek {
			if d >= 0 && d <= 6 {
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
			}
		}

	case entity.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		// Clamp policy for short months: request every day from 28 up to the
		// target and keep only the last match, so day 31 lands on Feb 28/29,
		// Apr 30, and so on instead of skipping the month.
		day := ev.RecurrenceDayOfMonth
		if day > 28 {
			for d := 28; d <= day; d++ {
				opt.Bymonthday = append(opt.Bymonthday, d)
			}
			opt.Bysetpos = []int{-1}
		} else {
			opt.Bymonthday = []int{day}
		}

	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event has no expandable recurrence", nil)
	}

	if ev.RecurrenceEndDate != nil {
		// End date bounds the series inclusively.
		y, m, d := ev.RecurrenceEndDate.Date()
		opt.Until = time.Date(y, m, d, 23, 59, 59, 0, ev.StartAt.Location())
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to build recurrence rule", err)
	}

	iter := rule.Iterator()
	out := make([]time.Time, 0, limit)
	for {
		next, ok := iter()
		if !ok {
			break
		}
		if next.Before(from) {
			continue
		}
		out = append(out, next)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
