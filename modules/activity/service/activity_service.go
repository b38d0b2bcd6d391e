package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"caseload-api/core/errors"
	"caseload-api/core/logger"
	"caseload-api/core/utils"
	"caseload-api/modules/activity/dto"
	"caseload-api/modules/activity/entity"
	"caseload-api/modules/activity/repository"
)

type ActivityServiceInterface interface {
	CreateActivity(ctx context.Context, userID uuid.UUID, req *dto.CreateActivityRequest) (*dto.ActivityResponse, *errors.AppError)
	GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*dto.ActivityResponse, *errors.AppError)
	GetActivityByShareCode(ctx context.Context, code string) (*dto.ActivityResponse, *errors.AppError)
	ListActivities(ctx context.Context, userID uuid.UUID) ([]entity.Activity, *errors.AppError)
	UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, *errors.AppError)
	DeleteActivity(ctx context.Context, userID, activityID uuid.UUID) *errors.AppError

	StartSession(ctx context.Context, userID, activityID uuid.UUID, req *dto.StartSessionRequest) (*entity.PlaySession, *errors.AppError)
	SubmitSession(ctx context.Context, userID, sessionID uuid.UUID, req *dto.SubmitSessionRequest) (*dto.SessionSummaryResponse, *errors.AppError)
	GetSessionSummary(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionSummaryResponse, *errors.AppError)
	ListSessionsByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.PlaySession, *errors.AppError)
}

type activityService struct {
	repo repository.ActivityRepositoryInterface
}

func NewActivityService(repo repository.ActivityRepositoryInterface) ActivityServiceInterface {
	return &activityService{repo: repo}
}

func (s *activityService) CreateActivity(ctx context.Context, userID uuid.UUID, req *dto.CreateActivityRequest) (*dto.ActivityResponse, *errors.AppError) {
	logger.Info("ActivityService:CreateActivity:Start", "userID", userID, "title", req.Title)

	now := time.Now()
	activity := &entity.Activity{
		UserID:      userID,
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		ShareCode:   utils.GenerateID(),
		Description: req.Description,
	}
	activity.CreatedAt = now
	activity.UpdatedAt = now

	items := buildItems(req.Items)
	if err := s.repo.CreateActivity(ctx, activity, items); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create activity", err)
	}

	return &dto.ActivityResponse{Activity: activity, Items: items}, nil
}

func (s *activityService) GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*dto.ActivityResponse, *errors.AppError) {
	activity, appErr := s.getOwned(ctx, userID, activityID)
	if appErr != nil {
		return nil, appErr
	}
	items, err := s.repo.GetItems(ctx, activityID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load items", err)
	}
	return &dto.ActivityResponse{Activity: activity, Items: items}, nil
}

// GetActivityByShareCode resolves a shared activity. This is the one read
// path without an ownership check; the share code is the capability.
func (s *activityService) GetActivityByShareCode(ctx context.Context, code string) (*dto.ActivityResponse, *errors.AppError) {
	activity, err := s.repo.GetActivityByShareCode(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get activity", err)
	}
	if activity == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Activity not found", nil)
	}
	items, err := s.repo.GetItems(ctx, activity.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load items", err)
	}
	return &dto.ActivityResponse{Activity: activity, Items: items}, nil
}

func (s *activityService) ListActivities(ctx context.Context, userID uuid.UUID) ([]entity.Activity, *errors.AppError) {
	activities, err := s.repo.ListActivities(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list activities", err)
	}
	return activities, nil
}

func (s *activityService) UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, *errors.AppError) {
	activity, appErr := s.getOwned(ctx, userID, activityID)
	if appErr != nil {
		return nil, appErr
	}

	activity.Title = req.Title
	activity.Slug = slug.Make(req.Title)
	activity.Description = req.Description

	items := buildItems(req.Items)
	if err := s.repo.ReplaceItems(ctx, activity, items); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update activity", err)
	}

	return &dto.ActivityResponse{Activity: activity, Items: items}, nil
}

func (s *activityService) DeleteActivity(ctx context.Context, userID, activityID uuid.UUID) *errors.AppError {
	if _, appErr := s.getOwned(ctx, userID, activityID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteActivity(ctx, activityID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete activity", err)
	}
	return nil
}

// StartSession opens a play session. Ownership of the activity is not
// required: shared activities are playable by anyone who can reach them.
func (s *activityService) StartSession(ctx context.Context, userID, activityID uuid.UUID, req *dto.StartSessionRequest) (*entity.PlaySession, *errors.AppError) {
	activity, err := s.repo.GetActivityByID(ctx, activityID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get activity", err)
	}
	if activity == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Activity not found", nil)
	}

	studentID, parseErr := uuid.Parse(req.StudentID)
	if parseErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid student ID", parseErr)
	}

	session := &entity.PlaySession{
		ActivityID: activityID,
		StudentID:  studentID,
		UserID:     userID,
		Status:     entity.SessionStatusInProgress,
		StartedAt:  time.Now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to start session", err)
	}
	return session, nil
}

func (s *activityService) SubmitSession(ctx context.Context, userID, sessionID uuid.UUID, req *dto.SubmitSessionRequest) (*dto.SessionSummaryResponse, *errors.AppError) {
	logger.Info("ActivityService:SubmitSession:Start", "sessionID", sessionID)

	session, appErr := s.getOwnedSession(ctx, userID, sessionID)
	if appErr != nil {
		return nil, appErr
	}
	if session.Status != entity.SessionStatusInProgress {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Session is already completed", nil)
	}

	items, err := s.repo.GetItems(ctx, session.ActivityID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load items", err)
	}

	given := make(map[uuid.UUID]string, len(req.Answers))
	for _, a := range req.Answers {
		itemID, parseErr := uuid.Parse(a.ItemID)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid item ID", parseErr)
		}
		given[itemID] = a.Given
	}

	score := ScoreAnswers(items, given)
	session.Status = entity.SessionStatusCompleted
	session.CorrectCount = score.CorrectCount
	session.TotalCount = score.TotalCount
	session.Percent = score.Percent

	if err := s.repo.CompleteSession(ctx, session, score.Answers); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to complete session", err)
	}

	return &dto.SessionSummaryResponse{Session: session, Answers: score.Answers}, nil
}

func (s *activityService) GetSessionSummary(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionSummaryResponse, *errors.AppError) {
	session, appErr := s.getOwnedSession(ctx, userID, sessionID)
	if appErr != nil {
		return nil, appErr
	}
	answers, err := s.repo.GetAnswers(ctx, sessionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load answers", err)
	}
	return &dto.SessionSummaryResponse{Session: session, Answers: answers}, nil
}

func (s *activityService) ListSessionsByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.PlaySession, *errors.AppError) {
	sessions, err := s.repo.ListSessionsByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list sessions", err)
	}
	owned := make([]entity.PlaySession, 0, len(sessions))
	for _, sess := range sessions {
		if sess.UserID == userID {
			owned = append(owned, sess)
		}
	}
	return owned, nil
}

func (s *activityService) getOwned(ctx context.Context, userID, activityID uuid.UUID) (*entity.Activity, *errors.AppError) {
	activity, err := s.repo.GetActivityByID(ctx, activityID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get activity", err)
	}
	if activity == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Activity not found", nil)
	}
	if activity.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Activity belongs to another user", nil)
	}
	return activity, nil
}

func (s *activityService) getOwnedSession(ctx context.Context, userID, sessionID uuid.UUID) (*entity.PlaySession, *errors.AppError) {
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

func buildItems(inputs []dto.ActivityItemInput) []entity.ActivityItem {
	items := make([]entity.ActivityItem, len(inputs))
	for i, in := range inputs {
		items[i] = entity.ActivityItem{
			Position:       i,
			Prompt:         in.Prompt,
			ExpectedAnswer: in.ExpectedAnswer,
		}
	}
	return items
}
