package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"caseload-api/modules/calendar/entity"
)

func mkEvent(id string, setting entity.Setting, start, end time.Time, driveMin int) entity.CalendarEvent {
	ev := entity.CalendarEvent{
		Title:   id,
		Setting: setting,
		StartAt: start,
		EndAt:   end,
	}
	if id != "" {
		ev.ID = uuid.NewMD5(uuid.NameSpaceOID, []byte(id))
	}
	if driveMin > 0 {
		ev.DriveTimeMinutes = driveMin
		ev.DriveTimeIncluded = true
	}
	return ev
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestEventsForDay(t *testing.T) {
	day := at(12, 0)
	events := []entity.CalendarEvent{
		mkEvent("late", entity.SettingInPerson, at(14, 0), at(15, 0), 0),
		mkEvent("early", entity.SettingInPerson, at(8, 0), at(9, 0), 0),
		mkEvent("nextday", entity.SettingInPerson, at(8, 0).AddDate(0, 0, 1), at(9, 0).AddDate(0, 0, 1), 0),
		{Title: "zero-start", Setting: entity.SettingInPerson},
		mkEvent("mid", entity.SettingInPerson, at(10, 0), at(11, 0), 0),
	}

	got := EventsForDay(events, day)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	want := []string{"early", "mid", "late"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: want %q, got %q", i, title, got[i].Title)
		}
	}
}

func TestEventsForDayLocalDateBoundary(t *testing.T) {
	// 23:30 UTC on March 10 is March 11 in UTC+1.
	loc := time.FixedZone("UTC+1", 3600)
	ev := mkEvent("boundary", entity.SettingInPerson,
		time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC), 0)

	day10 := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	if got := EventsForDay([]entity.CalendarEvent{ev}, day10); len(got) != 0 {
		t.Errorf("event should not land on March 10 in UTC+1, got %d matches", len(got))
	}
	day11 := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)
	if got := EventsForDay([]entity.CalendarEvent{ev}, day11); len(got) != 1 {
		t.Errorf("event should land on March 11 in UTC+1, got %d matches", len(got))
	}
}

func TestCheckDriveConflict(t *testing.T) {
	day := at(12, 0)

	tests := []struct {
		name         string
		events       []entity.CalendarEvent
		candidate    entity.CalendarEvent
		wantConflict bool
		wantGap      int
	}{
		{
			name: "gap shorter than drive time conflicts",
			events: []entity.CalendarEvent{
				mkEvent("prior", entity.SettingInPerson, at(9, 0), at(9, 50), 0),
			},
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: true,
			wantGap:      10,
		},
		{
			name: "gap equal to drive time does not conflict",
			events: []entity.CalendarEvent{
				mkEvent("prior", entity.SettingInPerson, at(9, 0), at(9, 45), 0),
			},
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: false,
		},
		{
			name: "telepractice candidate never conflicts",
			events: []entity.CalendarEvent{
				mkEvent("prior", entity.SettingInPerson, at(9, 0), at(9, 59), 0),
			},
			candidate:    mkEvent("cand", entity.SettingTelepractice, at(10, 0), at(11, 0), 15),
			wantConflict: false,
		},
		{
			name: "drive time not included never conflicts",
			events: []entity.CalendarEvent{
				mkEvent("prior", entity.SettingInPerson, at(9, 0), at(9, 59), 0),
			},
			candidate: func() entity.CalendarEvent {
				ev := mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 0)
				ev.DriveTimeMinutes = 15
				ev.DriveTimeIncluded = false
				return ev
			}(),
			wantConflict: false,
		},
		{
			name: "telepractice prior implies no commute",
			events: []entity.CalendarEvent{
				mkEvent("prior", entity.SettingTelepractice, at(9, 0), at(9, 59), 0),
			},
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: false,
		},
		{
			name: "hybrid prior counts as travel",
			events: []entity.CalendarEvent{
				mkEvent("prior", entity.SettingHybrid, at(9, 0), at(9, 55), 0),
			},
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: true,
			wantGap:      5,
		},
		{
			name: "latest-ending prior wins",
			events: []entity.CalendarEvent{
				mkEvent("far", entity.SettingInPerson, at(7, 0), at(8, 0), 0),
				mkEvent("near", entity.SettingInPerson, at(9, 0), at(9, 50), 0),
			},
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: true,
			wantGap:      10,
		},
		{
			name: "overlapping prior is ignored",
			events: []entity.CalendarEvent{
				mkEvent("overlap", entity.SettingInPerson, at(9, 30), at(10, 30), 0),
			},
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: false,
		},
		{
			name: "candidate excluded from its own day by ID",
			events: []entity.CalendarEvent{
				mkEvent("cand", entity.SettingInPerson, at(9, 0), at(9, 55), 0),
			},
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: false,
		},
		{
			name:         "no prior event no conflict",
			events:       nil,
			candidate:    mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15),
			wantConflict: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckDriveConflict(tc.events, &tc.candidate, day)
			if tc.wantConflict {
				if got == nil {
					t.Fatal("expected a conflict, got nil")
				}
				if got.GapMinutes != tc.wantGap {
					t.Errorf("gap: want %d, got %d", tc.wantGap, got.GapMinutes)
				}
				if got.DriveMinutes != tc.candidate.DriveTimeMinutes {
					t.Errorf("drive minutes: want %d, got %d", tc.candidate.DriveTimeMinutes, got.DriveMinutes)
				}
				if got.PriorEvent == nil {
					t.Error("conflict should carry the prior event")
				}
			} else if got != nil {
				t.Fatalf("expected no conflict, got gap=%d drive=%d", got.GapMinutes, got.DriveMinutes)
			}
		})
	}
}

func TestCheckDriveConflictBackToBack(t *testing.T) {
	day := at(12, 0)
	events := []entity.CalendarEvent{
		mkEvent("prior", entity.SettingInPerson, at(9, 0), at(10, 0), 0),
	}
	candidate := mkEvent("cand", entity.SettingInPerson, at(10, 0), at(11, 0), 15)

	got := CheckDriveConflict(events, &candidate, day)
	if got == nil {
		t.Fatal("back-to-back with declared drive time should conflict")
	}
	if got.GapMinutes != 0 {
		t.Errorf("gap: want 0, got %d", got.GapMinutes)
	}
}
