package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"caseload-api/core/entity"
)

// EventType classifies what a calendar block is for.
type EventType string

const (
	EventTypeDirectService EventType = "direct_service"
	EventTypeConsultation  EventType = "consultation"
	EventTypeEvaluation    EventType = "evaluation"
	EventTypeIEPMeeting    EventType = "iep_meeting"
	EventTypePlanning      EventType = "planning"
	EventTypeTravel        EventType = "travel"
	EventTypeOther         EventType = "other"
)

// Setting is where the session takes place.
type Setting string

const (
	SettingInPerson      Setting = "in_person"
	SettingTelepractice  Setting = "telepractice"
	SettingHybrid        Setting = "hybrid"
	SettingNotApplicable Setting = "not_applicable"
)

// RecurrenceType is how an event repeats.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// CalendarEvent is a scheduled block on an itinerant teacher's calendar.
type CalendarEvent struct {
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	Title         string     `db:"title" json:"title"`
	EventType     EventType  `db:"event_type" json:"event_type"`
	StartAt       time.Time  `db:"start_at" json:"start_at"`
	EndAt         time.Time  `db:"end_at" json:"end_at"`
	Setting       Setting    `db:"setting" json:"setting"`
	StudentID     *uuid.UUID `db:"student_id" json:"student_id,omitempty"`
	LocationLabel string     `db:"location_label" json:"location_label,omitempty"`

	DriveTimeMinutes   int     `db:"drive_time_minutes" json:"drive_time_minutes"`
	DriveTimeIncluded  bool    `db:"drive_time_included" json:"drive_time_included"`
	BypassDriveWarning bool    `db:"bypass_drive_warning" json:"bypass_drive_warning"`
	BypassReason       *string `db:"bypass_reason" json:"bypass_reason,omitempty"`

	ReminderMinutes pq.Int64Array `db:"reminder_minutes" json:"reminder_minutes"`

	RecurrenceType       RecurrenceType `db:"recurrence_type" json:"recurrence_type"`
	RecurrenceInterval   int            `db:"recurrence_interval" json:"recurrence_interval"`
	RecurrenceDaysOfWeek pq.Int64Array  `db:"recurrence_days_of_week" json:"recurrence_days_of_week"`
	RecurrenceDayOfMonth int            `db:"recurrence_day_of_month" json:"recurrence_day_of_month"`
	RecurrenceEndDate    *time.Time     `db:"recurrence_end_date" json:"recurrence_end_date,omitempty"`

	entity.BaseEntity
}

// RequiresTravel reports whether the event's setting implies a commute.
func (e *CalendarEvent) RequiresTravel() bool {
	return e.Setting == SettingInPerson || e.Setting == SettingHybrid
}

// DriveConflict is computed on demand when a candidate event's declared drive
// time does not fit the gap before it. Never persisted.
type DriveConflict struct {
	GapMinutes   int            `json:"gap_minutes"`
	DriveMinutes int            `json:"drive_minutes"`
	PriorEvent   *CalendarEvent `json:"prior_event"`
}
