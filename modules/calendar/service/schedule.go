package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"caseload-api/modules/calendar/entity"
)

// EventsForDay returns the events whose start falls on the same local calendar
// date as day, sorted ascending by start time. Events with a zero start are
// excluded. Pure; inputs are not mutated.
func EventsForDay(events []entity.CalendarEvent, day time.Time) []entity.CalendarEvent {
	loc := day.Location()
	y, m, d := day.In(loc).Date()

	matched := make([]entity.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.StartAt.IsZero() {
			continue
		}
		ey, em, ed := ev.StartAt.In(loc).Date()
		if ey == y && em == m && ed == d {
			matched = append(matched, ev)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartAt.Before(matched[j].StartAt)
	})
	return matched
}

// CheckDriveConflict reports whether the candidate's declared drive time
// exceeds the actual gap to the latest-ending in-person or hybrid event
// earlier that day. Returns nil when no conflict exists. The candidate is
// excluded from the day's events by ID so that edits do not conflict with
// themselves. Pure; inputs are not mutated.
func CheckDriveConflict(events []entity.CalendarEvent, candidate *entity.CalendarEvent, day time.Time) *entity.DriveConflict {
	if candidate == nil || !candidate.RequiresTravel() {
		return nil
	}
	if !candidate.DriveTimeIncluded || candidate.DriveTimeMinutes <= 0 {
		return nil
	}

	prior := latestPriorEvent(EventsForDay(events, day), candidate)
	if prior == nil {
		return nil
	}
	// No drive time is implied after a telepractice or desk block.
	if !prior.RequiresTravel() {
		return nil
	}

	gap := int(math.Round(candidate.StartAt.Sub(prior.EndAt).Minutes()))
	if gap >= candidate.DriveTimeMinutes {
		return nil
	}

	return &entity.DriveConflict{
		GapMinutes:   gap,
		DriveMinutes: candidate.DriveTimeMinutes,
		PriorEvent:   prior,
	}
}

// latestPriorEvent picks the latest-ending event that finishes at or before
// the candidate starts, skipping the candidate itself.
func latestPriorEvent(dayEvents []entity.CalendarEvent, candidate *entity.CalendarEvent) *entity.CalendarEvent {
	var prior *entity.CalendarEvent
	for i := range dayEvents {
		ev := &dayEvents[i]
		if candidate.ID != uuid.Nil && ev.ID == candidate.ID {
			continue
		}
		if ev.EndAt.After(candidate.StartAt) {
			continue
		}
		if prior == nil || ev.EndAt.After(prior.EndAt) {
			prior = ev
		}
	}
	return prior
}
