package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	coreEntity "caseload-api/core/entity"
	"caseload-api/core/errors"
	"caseload-api/core/logger"
	"caseload-api/modules/ling6/dto"
	"caseload-api/modules/ling6/entity"
	"caseload-api/modules/ling6/repository"
)

type Ling6ServiceInterface interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, *errors.AppError)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionResponse, *errors.AppError)
	ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]dto.SessionResponse, *errors.AppError)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) *errors.AppError
}

type ling6Service struct {
	repo repository.SessionRepositoryInterface
}

func NewLing6Service(repo repository.SessionRepositoryInterface) Ling6ServiceInterface {
	return &ling6Service{repo: repo}
}

func (s *ling6Service) CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, *errors.AppError) {
	logger.Info("Ling6Service:CreateSession:Start", "user_id", userID, "student_id", req.StudentID)

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid student ID", err)
	}

	conductedAt := time.Now()
	if req.ConductedAt != "" {
		conductedAt, err = time.Parse(time.RFC3339, req.ConductedAt)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid conducted_at, expected RFC3339", err)
		}
	}

	now := time.Now()
	session := &entity.Ling6Session{
		UserID:      userID,
		StudentID:   studentID,
		ConductedAt: conductedAt,
		Environment: req.Environment,
		DeviceWorn:  req.DeviceWorn,
		Distance:    req.Distance,
		Notes:       req.Notes,
		BaseEntity:  coreEntity.BaseEntity{CreatedAt: now, UpdatedAt: now},
	}

	trials := make([]entity.Ling6Trial, 0, len(req.Trials))
	for i, t := range req.Trials {
		trials = append(trials, entity.Ling6Trial{
			Sound:       entity.Sound(t.Sound),
			Response:    entity.Response(t.Response),
			PromptLevel: entity.PromptLevel(t.PromptLevel),
			Position:    i,
		})
	}

	if err := s.repo.CreateSession(ctx, session, trials); err != nil {
		logger.Error("Ling6Service:CreateSession:Create:Error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to save listening check", err)
	}

	return s.toResponse(session, trials), nil
}

func (s *ling6Service) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionResponse, *errors.AppError) {
	session, appErr := s.getOwned(ctx, userID, sessionID)
	if appErr != nil {
		return nil, appErr
	}

	trials, err := s.repo.GetTrialsBySessionID(ctx, sessionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load trials", err)
	}
	return s.toResponse(session, trials), nil
}

func (s *ling6Service) ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]dto.SessionResponse, *errors.AppError) {
	sessions, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list sessions", err)
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		if sessions[i].UserID != userID {
			continue
		}
		trials, err := s.repo.GetTrialsBySessionID(ctx, sessions[i].ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load trials", err)
		}
		out = append(out, *s.toResponse(&sessions[i], trials))
	}
	return out, nil
}

func (s *ling6Service) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) *errors.AppError {
	if _, appErr := s.getOwned(ctx, userID, sessionID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete session", err)
	}
	return nil
}

func (s *ling6Service) getOwned(ctx context.Context, userID, sessionID uuid.UUID) (*entity.Ling6Session, *errors.AppError) {
	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get session", err)
	}
	if session == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Session not found", nil)
	}
	if session.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Session belongs to another user", nil)
	}
	return session, nil
}

func (s *ling6Service) toResponse(session *entity.Ling6Session, trials []entity.Ling6Trial) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:          session.ID.String(),
		StudentID:   session.StudentID.String(),
		ConductedAt: session.ConductedAt,
		Environment: session.Environment,
		DeviceWorn:  session.DeviceWorn,
		Distance:    session.Distance,
		Notes:       session.Notes,
		Trials:      trials,
		Summary:     ComputeSummary(trials),
		CreatedAt:   session.CreatedAt,
	}
}
