package dto

import (
	"time"

	"caseload-api/modules/calendar/entity"
)

// ===================== Request DTOs =====================

// RecurrenceFields is the recurrence descriptor as submitted by the client.
type RecurrenceFields struct {
	Type       string  `json:"type" validate:"omitempty,oneof=none daily weekly monthly"`
	Interval   int     `json:"interval" validate:"omitempty,min=1"`
	DaysOfWeek []int   `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
	DayOfMonth int     `json:"day_of_month" validate:"omitempty,min=1,max=31"`
	EndDate    *string `json:"end_date"` // YYYY-MM-DD
}

// CreateEventRequest for creating a calendar event.
type CreateEventRequest struct {
	Title              string            `json:"title" validate:"required"`
	EventType          string            `json:"event_type" validate:"required,oneof=direct_service consultation evaluation iep_meeting planning travel other"`
	StartAt            string            `json:"start_at" validate:"required"` // RFC3339
	EndAt              string            `json:"end_at" validate:"required"`   // RFC3339
	Setting            string            `json:"setting" validate:"required,oneof=in_person telepractice hybrid not_applicable"`
	StudentID          string            `json:"student_id"`
	LocationLabel      string            `json:"location_label"`
	DriveTimeMinutes   int               `json:"drive_time_minutes" validate:"min=0"`
	BypassDriveWarning bool              `json:"bypass_drive_warning"`
	BypassReason       string            `json:"bypass_reason"`
	ReminderMinutes    []int             `json:"reminder_minutes" validate:"omitempty,dive,min=0"`
	Recurrence         *RecurrenceFields `json:"recurrence"`
}

// UpdateEventRequest mirrors CreateEventRequest for edits.
type UpdateEventRequest struct {
	CreateEventRequest
}

// ConflictCheckRequest asks whether a candidate time would conflict before
// saving. EventID is set when editing an existing event.
type ConflictCheckRequest struct {
	EventID          string `json:"event_id"`
	StartAt          string `json:"start_at" validate:"required"`
	EndAt            string `json:"end_at" validate:"required"`
	Setting          string `json:"setting" validate:"required,oneof=in_person telepractice hybrid not_applicable"`
	DriveTimeMinutes int    `json:"drive_time_minutes" validate:"min=0"`
}

// ===================== Response DTOs =====================

// ConflictResponse reports a drive-time conflict, or Conflict=false.
type ConflictResponse struct {
	Conflict     bool           `json:"conflict"`
	GapMinutes   int            `json:"gap_minutes,omitempty"`
	DriveMinutes int            `json:"drive_minutes,omitempty"`
	PriorEvent   *EventResponse `json:"prior_event,omitempty"`
}

// EventResponse for event details.
type EventResponse struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	EventType          string            `json:"event_type"`
	StartAt            time.Time         `json:"start_at"`
	EndAt              time.Time         `json:"end_at"`
	Setting            string            `json:"setting"`
	StudentID          string            `json:"student_id,omitempty"`
	LocationLabel      string            `json:"location_label,omitempty"`
	DriveTimeMinutes   int               `json:"drive_time_minutes"`
	DriveTimeIncluded  bool              `json:"drive_time_included"`
	BypassDriveWarning bool              `json:"bypass_drive_warning"`
	BypassReason       string            `json:"bypass_reason,omitempty"`
	ReminderMinutes    []int             `json:"reminder_minutes"`
	Recurrence         *RecurrenceFields `json:"recurrence,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// DayResponse is the events of a single day sorted by start time.
type DayResponse struct {
	Day    string          `json:"day"` // YYYY-MM-DD
	Events []EventResponse `json:"events"`
}

// OccurrencePreviewResponse is a read-only expansion of an event's
// recurrence descriptor.
type OccurrencePreviewResponse struct {
	EventID     string      `json:"event_id"`
	Occurrences []time.Time `json:"occurrences"`
}

// FromEntity maps a calendar event to its response shape.
func FromEntity(ev *entity.CalendarEvent) EventResponse {
	resp := EventResponse{
		ID:                 ev.ID.String(),
		Title:              ev.Title,
		EventType:          string(ev.EventType),
		StartAt:            ev.StartAt,
		EndAt:              ev.EndAt,
		Setting:            string(ev.Setting),
		LocationLabel:      ev.LocationLabel,
		DriveTimeMinutes:   ev.DriveTimeMinutes,
		DriveTimeIncluded:  ev.DriveTimeIncluded,
		BypassDriveWarning: ev.BypassDriveWarning,
		ReminderMinutes:    make([]int, 0, len(ev.ReminderMinutes)),
		CreatedAt:          ev.CreatedAt,
	}
	if ev.StudentID != nil {
		resp.StudentID = ev.StudentID.String()
	}
	if ev.BypassReason != nil {
		resp.BypassReason = *ev.BypassReason
	}
	for _, m := range ev.ReminderMinutes {
		resp.ReminderMinutes = append(resp.ReminderMinutes, int(m))
	}
	if ev.RecurrenceType != entity.RecurrenceNone && ev.RecurrenceType != "" {
		rec := &RecurrenceFields{
			Type:       string(ev.RecurrenceType),
			Interval:   ev.RecurrenceInterval,
			DayOfMonth: ev.RecurrenceDayOfMonth,
		}
		for _, d := range ev.RecurrenceDaysOfWeek {
			rec.DaysOfWeek = append(rec.DaysOfWeek, int(d))
		}
		if ev.RecurrenceEndDate != nil {
			end := ev.RecurrenceEndDate.Format("2006-01-02")
			rec.EndDate = &end
		}
		resp.Recurrence = rec
	}
	return resp
}
