package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"caseload-api/core/cache"
	"caseload-api/core/constants"
	coreEntity "caseload-api/core/entity"
	"caseload-api/core/errors"
	"caseload-api/core/logger"
	"caseload-api/core/worker"
	"caseload-api/modules/calendar/dto"
	"caseload-api/modules/calendar/entity"
	"caseload-api/modules/calendar/repository"
)

const dayCacheTTL = 5 * time.Minute

type CalendarServiceInterface interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]dto.EventResponse, *errors.AppError)
	GetDay(ctx context.Context, userID uuid.UUID, day time.Time) (*dto.DayResponse, *errors.AppError)
	ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, userID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError
	CheckConflict(ctx context.Context, userID uuid.UUID, req *dto.ConflictCheckRequest) (*dto.ConflictResponse, *errors.AppError)
	PreviewEventOccurrences(ctx context.Context, userID, eventID uuid.UUID, from time.Time, limit int) (*dto.OccurrencePreviewResponse, *errors.AppError)
}

type calendarService struct {
	repo         repository.EventRepositoryInterface
	cache        *cache.Cache
	workerClient *worker.Client
}

func NewCalendarService(repo repository.EventRepositoryInterface, c *cache.Cache, wc *worker.Client) CalendarServiceInterface {
	return &calendarService{
		repo:         repo,
		cache:        c,
		workerClient: wc,
	}
}

// CreateEvent validates, conflict-checks and persists a new calendar event,
// then schedules its reminders.
func (s *calendarService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	logger.Info("CalendarService:CreateEvent:Start", "user_id", userID)

	event, appErr := s.buildEvent(userID, req)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := s.guardDriveConflict(ctx, event, req.BypassDriveWarning, req.BypassReason); appErr != nil {
		return nil, appErr
	}

	now := time.Now()
	event.BaseEntity = coreEntity.BaseEntity{CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, event); err != nil {
		logger.Error("CalendarService:CreateEvent:Create:Error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	s.scheduleReminders(ctx, event)
	s.invalidateDay(ctx, userID, event.StartAt)

	resp := dto.FromEntity(event)
	return &resp, nil
}

func (s *calendarService) GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getOwned(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}
	resp := dto.FromEntity(event)
	return &resp, nil
}

func (s *calendarService) GetRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list events", err)
	}
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.FromEntity(&events[i]))
	}
	return out, nil
}

// GetDay returns the day's events sorted by start time, serving from the
// Redis day cache when warm.
func (s *calendarService) GetDay(ctx context.Context, userID uuid.UUID, day time.Time) (*dto.DayResponse, *errors.AppError) {
	key := s.dayCacheKey(userID, day)
	if s.cache != nil {
		if raw, ok, err := s.cache.GetString(ctx, key); err == nil && ok {
			var cached dto.DayResponse
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return &cached, nil
			}
		}
	}

	events, err := s.repo.ListByUserBetween(ctx, userID, day.AddDate(0, 0, -1), day.AddDate(0, 0, 2))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list events", err)
	}

	dayEvents := EventsForDay(events, day)
	resp := &dto.DayResponse{
		Day:    day.Format("2006-01-02"),
		Events: make([]dto.EventResponse, 0, len(dayEvents)),
	}
	for i := range dayEvents {
		resp.Events = append(resp.Events, dto.FromEntity(&dayEvents[i]))
	}

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.cache.Set(ctx, key, string(raw), dayCacheTTL)
		}
	}
	return resp, nil
}

// ListByStudent returns the student's scheduled events, newest first.
func (s *calendarService) ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list student events", err)
	}
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		if events[i].UserID != userID {
			continue
		}
		out = append(out, dto.FromEntity(&events[i]))
	}
	return out, nil
}

func (s *calendarService) UpdateEvent(ctx context.Context, userID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	existing, appErr := s.getOwned(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}
	oldStart := existing.StartAt

	event, appErr := s.buildEvent(userID, &req.CreateEventRequest)
	if appErr != nil {
		return nil, appErr
	}
	event.BaseEntity = existing.BaseEntity

	if appErr := s.guardDriveConflict(ctx, event, req.BypassDriveWarning, req.BypassReason); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.Update(ctx, event); err != nil {
		logger.Error("CalendarService:UpdateEvent:Update:Error", err, "event_id", eventID)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}

	// Drop stale dedupe keys so rescheduled reminders can fire again.
	if s.cache != nil {
		if err := s.cache.ClearReminderSent(ctx, eventID.String()); err != nil {
			logger.Warn("CalendarService:UpdateEvent:ClearReminderSent", err, "event_id", eventID)
		}
	}
	s.scheduleReminders(ctx, event)
	s.invalidateDay(ctx, userID, oldStart)
	s.invalidateDay(ctx, userID, event.StartAt)

	resp := dto.FromEntity(event)
	return &resp, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError {
	existing, appErr := s.getOwned(ctx, userID, eventID)
	if appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		logger.Error("CalendarService:DeleteEvent:Delete:Error", err, "event_id", eventID)
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}
	s.invalidateDay(ctx, userID, existing.StartAt)
	return nil
}

// CheckConflict runs the pre-save drive-time check for a candidate slot.
func (s *calendarService) CheckConflict(ctx context.Context, userID uuid.UUID, req *dto.ConflictCheckRequest) (*dto.ConflictResponse, *errors.AppError) {
	startAt, endAt, appErr := parseEventTimes(req.StartAt, req.EndAt)
	if appErr != nil {
		return nil, appErr
	}

	candidate := &entity.CalendarEvent{
		UserID:            userID,
		StartAt:           startAt,
		EndAt:             endAt,
		Setting:           entity.Setting(req.Setting),
		DriveTimeMinutes:  req.DriveTimeMinutes,
		DriveTimeIncluded: req.DriveTimeMinutes > 0,
	}
	if req.EventID != "" {
		id, err := uuid.Parse(req.EventID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid event ID", err)
		}
		candidate.ID = id
	}

	conflict, appErr := s.evaluateConflict(ctx, candidate)
	if appErr != nil {
		return nil, appErr
	}

	resp := &dto.ConflictResponse{Conflict: conflict != nil}
	if conflict != nil {
		resp.GapMinutes = conflict.GapMinutes
		resp.DriveMinutes = conflict.DriveMinutes
		prior := dto.FromEntity(conflict.PriorEvent)
		resp.PriorEvent = &prior
	}
	return resp, nil
}

// PreviewEventOccurrences expands a saved event's recurrence descriptor into
// upcoming start times. Read-only.
func (s *calendarService) PreviewEventOccurrences(ctx context.Context, userID, eventID uuid.UUID, from time.Time, limit int) (*dto.OccurrencePreviewResponse, *errors.AppError) {
	event, appErr := s.getOwned(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}

	occurrences, appErr := PreviewOccurrences(event, from, limit)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.OccurrencePreviewResponse{
		EventID:     eventID.String(),
		Occurrences: occurrences,
	}, nil
}

// ===================== helpers =====================

func (s *calendarService) getOwned(ctx context.Context, userID, eventID uuid.UUID) (*entity.CalendarEvent, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Event belongs to another user", nil)
	}
	return event, nil
}

// buildEvent maps and normalizes a request into an event entity.
func (s *calendarService) buildEvent(userID uuid.UUID, req *dto.CreateEventRequest) (*entity.CalendarEvent, *errors.AppError) {
	startAt, endAt, appErr := parseEventTimes(req.StartAt, req.EndAt)
	if appErr != nil {
		return nil, appErr
	}

	event := &entity.CalendarEvent{
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		EventType:     entity.EventType(req.EventType),
		StartAt:       startAt,
		EndAt:         endAt,
		Setting:       entity.Setting(req.Setting),
		LocationLabel: strings.TrimSpace(req.LocationLabel),
	}

	if req.StudentID != "" {
		studentID, err := uuid.Parse(req.StudentID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid student ID", err)
		}
		event.StudentID = &studentID
	}

	// Drive time only means something for settings that involve travel.
	if event.RequiresTravel() && req.DriveTimeMinutes > 0 {
		event.DriveTimeMinutes = req.DriveTimeMinutes
		event.DriveTimeIncluded = true
	}

	event.ReminderMinutes = make(pq.Int64Array, 0, len(req.ReminderMinutes))
	seen := map[int]bool{}
	for _, m := range req.ReminderMinutes {
		if m < 0 || seen[m] {
			continue
		}
		seen[m] = true
		event.ReminderMinutes = append(event.ReminderMinutes, int64(m))
	}

	if req.Recurrence != nil {
		event.RecurrenceType = entity.RecurrenceType(req.Recurrence.Type)
		event.RecurrenceInterval = req.Recurrence.Interval
		event.RecurrenceDayOfMonth = req.Recurrence.DayOfMonth
		for _, d := range req.Recurrence.DaysOfWeek {
			event.RecurrenceDaysOfWeek = append(event.RecurrenceDaysOfWeek, int64(d))
		}
		if req.Recurrence.EndDate != nil && *req.Recurrence.EndDate != "" {
			endDate, err := time.ParseInLocation("2006-01-02", *req.Recurrence.EndDate, startAt.Location())
			if err != nil {
				return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid recurrence end date", err)
			}
			event.RecurrenceEndDate = &endDate
		}
	} else {
		event.RecurrenceType = entity.RecurrenceNone
	}
	if appErr := ValidateRecurrence(event); appErr != nil {
		return nil, appErr
	}
	return event, nil
}

// guardDriveConflict blocks the save when a conflict exists and no override
// was supplied. Overrides need a non-empty reason and skip re-evaluation.
func (s *calendarService) guardDriveConflict(ctx context.Context, event *entity.CalendarEvent, bypass bool, reason string) *errors.AppError {
	if bypass {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return errors.NewAppError(errors.ErrInvalidInput, "Overriding a drive-time warning requires a reason", nil)
		}
		event.BypassDriveWarning = true
		event.BypassReason = &reason
		return nil
	}

	conflict, appErr := s.evaluateConflict(ctx, event)
	if appErr != nil {
		return appErr
	}
	if conflict != nil {
		return errors.NewAppError(errors.ErrDriveConflict,
			fmt.Sprintf("Only %d minutes before this event, but %d minutes of drive time are declared",
				conflict.GapMinutes, conflict.DriveMinutes), nil)
	}
	return nil
}

func (s *calendarService) evaluateConflict(ctx context.Context, candidate *entity.CalendarEvent) (*entity.DriveConflict, *errors.AppError) {
	// Window is generous around the target day; EventsForDay does the exact
	// local-date filtering.
	events, err := s.repo.ListByUserBetween(ctx, candidate.UserID,
		candidate.StartAt.AddDate(0, 0, -1), candidate.StartAt.AddDate(0, 0, 2))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load day events", err)
	}
	return CheckDriveConflict(events, candidate, candidate.StartAt), nil
}

func (s *calendarService) scheduleReminders(ctx context.Context, event *entity.CalendarEvent) {
	if s.workerClient == nil {
		return
	}
	now := time.Now()
	for _, lead := range event.ReminderMinutes {
		processAt := event.StartAt.Add(-time.Duration(lead) * time.Minute)
		if processAt.Before(now) {
			continue
		}
		payload := worker.ReminderPayload{
			EventID:     event.ID,
			UserID:      event.UserID,
			Title:       event.Title,
			StartAt:     event.StartAt,
			LeadMinutes: int(lead),
		}
		if err := s.workerClient.ScheduleReminder(ctx, payload, processAt); err != nil {
			logger.Error("CalendarService:ScheduleReminders:Error", err, "event_id", event.ID, "lead", lead)
		}
	}
}

func (s *calendarService) invalidateDay(ctx context.Context, userID uuid.UUID, day time.Time) {
	if s.cache != nil {
		if err := s.cache.Del(ctx, s.dayCacheKey(userID, day)); err != nil {
			logger.Warn("CalendarService:InvalidateDay:Error", err, "user_id", userID)
		}
	}
}

func (s *calendarService) dayCacheKey(userID uuid.UUID, day time.Time) string {
	return constants.CacheKeyDayEvents + userID.String() + ":" + day.Format("2006-01-02")
}

func parseEventTimes(start, end string) (time.Time, time.Time, *errors.AppError) {
	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time, expected RFC3339", err)
	}
	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Invalid end time, expected RFC3339", err)
	}
	if !startAt.Before(endAt) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Event start must be before its end", nil)
	}
	return startAt, endAt, nil
}
