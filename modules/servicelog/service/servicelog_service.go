package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	coreEntity "caseload-api/core/entity"
	"caseload-api/core/errors"
	"caseload-api/core/logger"
	calendarDto "caseload-api/modules/calendar/dto"
	"caseload-api/modules/servicelog/dto"
	"caseload-api/modules/servicelog/entity"
	"caseload-api/modules/servicelog/repository"
)

// EventSource is the slice of the calendar service used to verify linked
// events. Declared here to keep the module dependency one-way.
type EventSource interface {
	GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*calendarDto.EventResponse, *errors.AppError)
}

type ServiceLogServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateServiceLogRequest) (*entity.ServiceLog, *errors.AppError)
	Get(ctx context.Context, userID, logID uuid.UUID) (*entity.ServiceLog, *errors.AppError)
	ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.ServiceLog, *errors.AppError)
	Update(ctx context.Context, userID, logID uuid.UUID, req *dto.UpdateServiceLogRequest) (*entity.ServiceLog, *errors.AppError)
	Delete(ctx context.Context, userID, logID uuid.UUID) *errors.AppError
	MonthlyTotals(ctx context.Context, userID, studentID uuid.UUID) ([]entity.MonthlyTotal, *errors.AppError)
}

type serviceLogService struct {
	repo   repository.ServiceLogRepositoryInterface
	events EventSource
}

func NewServiceLogService(repo repository.ServiceLogRepositoryInterface, events EventSource) ServiceLogServiceInterface {
	return &serviceLogService{repo: repo, events: events}
}

func (s *serviceLogService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateServiceLogRequest) (*entity.ServiceLog, *errors.AppError) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid student ID", err)
	}

	serviceDate, appErr := parseServiceDate(req.ServiceDate)
	if appErr != nil {
		return nil, appErr
	}
	if req.DirectMinutes+req.ConsultMinutes == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Log at least one direct or consult minute", nil)
	}

	now := time.Now()
	log := &entity.ServiceLog{
		UserID:         userID,
		StudentID:      studentID,
		ServiceDate:    serviceDate,
		DirectMinutes:  req.DirectMinutes,
		ConsultMinutes: req.ConsultMinutes,
		Setting:        req.Setting,
		Note:           req.Note,
		BaseEntity:     coreEntity.BaseEntity{CreatedAt: now, UpdatedAt: now},
	}
	if req.EventID != "" {
		eventID, appErr := s.resolveEventLink(ctx, userID, req.EventID)
		if appErr != nil {
			return nil, appErr
		}
		log.EventID = eventID
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("ServiceLogService:Create:Error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create service log", err)
	}
	return log, nil
}

func (s *serviceLogService) Get(ctx context.Context, userID, logID uuid.UUID) (*entity.ServiceLog, *errors.AppError) {
	return s.getOwned(ctx, userID, logID)
}

func (s *serviceLogService) ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.ServiceLog, *errors.AppError) {
	logs, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list service logs", err)
	}
	out := make([]entity.ServiceLog, 0, len(logs))
	for _, l := range logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *serviceLogService) Update(ctx context.Context, userID, logID uuid.UUID, req *dto.UpdateServiceLogRequest) (*entity.ServiceLog, *errors.AppError) {
	log, appErr := s.getOwned(ctx, userID, logID)
	if appErr != nil {
		return nil, appErr
	}

	serviceDate, appErr := parseServiceDate(req.ServiceDate)
	if appErr != nil {
		return nil, appErr
	}
	if req.DirectMinutes+req.ConsultMinutes == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Log at least one direct or consult minute", nil)
	}

	log.ServiceDate = serviceDate
	log.DirectMinutes = req.DirectMinutes
	log.ConsultMinutes = req.ConsultMinutes
	log.Setting = req.Setting
	log.Note = req.Note
	log.EventID = nil
	if req.EventID != "" {
		eventID, appErr := s.resolveEventLink(ctx, userID, req.EventID)
		if appErr != nil {
			return nil, appErr
		}
		log.EventID = eventID
	}

	if err := s.repo.Update(ctx, log); err != nil {
		logger.Error("ServiceLogService:Update:Error", err, "log_id", logID)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update service log", err)
	}
	return log, nil
}

func (s *serviceLogService) Delete(ctx context.Context, userID, logID uuid.UUID) *errors.AppError {
	if _, appErr := s.getOwned(ctx, userID, logID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, logID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete service log", err)
	}
	return nil
}

func (s *serviceLogService) MonthlyTotals(ctx context.Context, userID, studentID uuid.UUID) ([]entity.MonthlyTotal, *errors.AppError) {
	totals, err := s.repo.MonthlyTotals(ctx, userID, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to aggregate service minutes", err)
	}
	return totals, nil
}

func (s *serviceLogService) getOwned(ctx context.Context, userID, logID uuid.UUID) (*entity.ServiceLog, *errors.AppError) {
	log, err := s.repo.GetByID(ctx, logID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get service log", err)
	}
	if log == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Service log not found", nil)
	}
	if log.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Service log belongs to another user", nil)
	}
	return log, nil
}

// resolveEventLink parses the linked event ID and checks the event exists and
// belongs to the caller.
func (s *serviceLogService) resolveEventLink(ctx context.Context, userID uuid.UUID, raw string) (*uuid.UUID, *errors.AppError) {
	eventID, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid event ID", err)
	}
	if s.events != nil {
		if _, appErr := s.events.GetEvent(ctx, userID, eventID); appErr != nil {
			return nil, appErr
		}
	}
	return &eventID, nil
}

func parseServiceDate(raw string) (time.Time, *errors.AppError) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Invalid service date, expected YYYY-MM-DD", err)
	}
	return t, nil
}
