package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/modules/calendar/entity"
)

// EventRepository handles calendar event database operations.
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract.
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.CalendarEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error)
	ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.CalendarEvent, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.CalendarEvent, error)
	Update(ctx context.Context, event *entity.CalendarEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const eventColumns = `
	id, user_id, title, event_type, start_at, end_at, setting, student_id,
	location_label, drive_time_minutes, drive_time_included,
	bypass_drive_warning, bypass_reason, reminder_minutes,
	recurrence_type, recurrence_interval, recurrence_days_of_week,
	recurrence_day_of_month, recurrence_end_date, created_at, updated_at
`

func (r *EventRepository) Create(ctx context.Context, event *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (
			user_id, title, event_type, start_at, end_at, setting, student_id,
			location_label, drive_time_minutes, drive_time_included,
			bypass_drive_warning, bypass_reason, reminder_minutes,
			recurrence_type, recurrence_interval, recurrence_days_of_week,
			recurrence_day_of_month, recurrence_end_date, created_at, updated_at
		) VALUES (
			:user_id, :title, :event_type, :start_at, :end_at, :setting, :student_id,
			:location_label, :drive_time_minutes, :drive_time_included,
			:bypass_drive_warning, :bypass_reason, :reminder_minutes,
			:recurrence_type, :recurrence_interval, :recurrence_days_of_week,
			:recurrence_day_of_month, :recurrence_end_date, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, event)
	if err != nil {
		logger.Error("EventRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&event.ID)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1`

	var event entity.CalendarEvent
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID:Error:", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE user_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at ASC
	`
	var events []entity.CalendarEvent
	err := r.DB.SelectContext(ctx, &events, query, userID, from, to)
	if err != nil {
		logger.Error("EventRepository:ListByUserBetween:Error:", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE student_id = $1
		ORDER BY start_at DESC
	`
	var events []entity.CalendarEvent
	err := r.DB.SelectContext(ctx, &events, query, studentID)
	if err != nil {
		logger.Error("EventRepository:ListByStudent:Error:", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.CalendarEvent) error {
	query := `
		UPDATE calendar_events SET
			title = :title,
			event_type = :event_type,
			start_at = :start_at,
			end_at = :end_at,
			setting = :setting,
			student_id = :student_id,
			location_label = :location_label,
			drive_time_minutes = :drive_time_minutes,
			drive_time_included = :drive_time_included,
			bypass_drive_warning = :bypass_drive_warning,
			bypass_reason = :bypass_reason,
			reminder_minutes = :reminder_minutes,
			recurrence_type = :recurrence_type,
			recurrence_interval = :recurrence_interval,
			recurrence_days_of_week = :recurrence_days_of_week,
			recurrence_day_of_month = :recurrence_day_of_month,
			recurrence_end_date = :recurrence_end_date,
			updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.DB.NamedExecContext(ctx, query, event)
	if err != nil {
		logger.Error("EventRepository:Update:Error:", err)
		return err
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM calendar_events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:Delete:Error:", err)
		return err
	}
	return nil
}
