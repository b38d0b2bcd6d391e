package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	coreEntity "caseload-api/core/entity"
	"caseload-api/core/errors"
	"caseload-api/core/logger"
	"caseload-api/modules/goal/dto"
	"caseload-api/modules/goal/entity"
	"caseload-api/modules/goal/repository"
)

type GoalServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*entity.IEPGoal, *errors.AppError)
	Get(ctx context.Context, userID, goalID uuid.UUID) (*dto.GoalResponse, *errors.AppError)
	ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.IEPGoal, *errors.AppError)
	Update(ctx context.Context, userID, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*entity.IEPGoal, *errors.AppError)
	Delete(ctx context.Context, userID, goalID uuid.UUID) *errors.AppError
	AddProgress(ctx context.Context, userID, goalID uuid.UUID, req *dto.AddProgressRequest) (*entity.GoalProgress, *errors.AppError)
}

type goalService struct {
	repo repository.GoalRepositoryInterface
}

func NewGoalService(repo repository.GoalRepositoryInterface) GoalServiceInterface {
	return &goalService{repo: repo}
}

func (s *goalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*entity.IEPGoal, *errors.AppError) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid student ID", err)
	}

	targetDate, appErr := parseTargetDate(req.TargetDate)
	if appErr != nil {
		return nil, appErr
	}

	now := time.Now()
	goal := &entity.IEPGoal{
		UserID:          userID,
		StudentID:       studentID,
		Area:            req.Area,
		Description:     req.Description,
		Baseline:        req.Baseline,
		TargetCriterion: req.TargetCriterion,
		TargetDate:      targetDate,
		Status:          entity.GoalStatusActive,
		BaseEntity:      coreEntity.BaseEntity{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		logger.Error("GoalService:Create:Error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create goal", err)
	}
	return goal, nil
}

func (s *goalService) Get(ctx context.Context, userID, goalID uuid.UUID) (*dto.GoalResponse, *errors.AppError) {
	goal, appErr := s.getOwned(ctx, userID, goalID)
	if appErr != nil {
		return nil, appErr
	}

	progress, err := s.repo.ListProgress(ctx, goalID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load progress", err)
	}
	return &dto.GoalResponse{Goal: *goal, Progress: progress}, nil
}

func (s *goalService) ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.IEPGoal, *errors.AppError) {
	goals, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list goals", err)
	}
	out := make([]entity.IEPGoal, 0, len(goals))
	for _, g := range goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *goalService) Update(ctx context.Context, userID, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*entity.IEPGoal, *errors.AppError) {
	goal, appErr := s.getOwned(ctx, userID, goalID)
	if appErr != nil {
		return nil, appErr
	}

	targetDate, appErr := parseTargetDate(req.TargetDate)
	if appErr != nil {
		return nil, appErr
	}

	goal.Area = req.Area
	goal.Description = req.Description
	goal.Baseline = req.Baseline
	goal.TargetCriterion = req.TargetCriterion
	goal.TargetDate = targetDate
	goal.Status = entity.GoalStatus(req.Status)

	if err := s.repo.Update(ctx, goal); err != nil {
		logger.Error("GoalService:Update:Error", err, "goal_id", goalID)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update goal", err)
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, userID, goalID uuid.UUID) *errors.AppError {
	if _, appErr := s.getOwned(ctx, userID, goalID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, goalID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete goal", err)
	}
	return nil
}

func (s *goalService) AddProgress(ctx context.Context, userID, goalID uuid.UUID, req *dto.AddProgressRequest) (*entity.GoalProgress, *errors.AppError) {
	if _, appErr := s.getOwned(ctx, userID, goalID); appErr != nil {
		return nil, appErr
	}

	progress := &entity.GoalProgress{
		GoalID:     goalID,
		Note:       req.Note,
		Percent:    req.Percent,
		RecordedAt: time.Now(),
	}
	if err := s.repo.AddProgress(ctx, progress); err != nil {
		logger.Error("GoalService:AddProgress:Error", err, "goal_id", goalID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to record progress", err)
	}
	return progress, nil
}

func (s *goalService) getOwned(ctx context.Context, userID, goalID uuid.UUID) (*entity.IEPGoal, *errors.AppError) {
	goal, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get goal", err)
	}
	if goal == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Goal not found", nil)
	}
	if goal.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Goal belongs to another caseload", nil)
	}
	return goal, nil
}

func parseTargetDate(raw string) (*time.Time, *errors.AppError) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid target date, expected YYYY-MM-DD", err)
	}
	return &t, nil
}
