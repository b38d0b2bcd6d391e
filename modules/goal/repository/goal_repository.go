package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/modules/goal/entity"
)

type GoalRepository struct {
	DB database.Database
}

func NewGoalRepository(db database.Database) *GoalRepository {
	return &GoalRepository{DB: db}
}

type GoalRepositoryInterface interface {
	Create(ctx context.Context, goal *entity.IEPGoal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.IEPGoal, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.IEPGoal, error)
	Update(ctx context.Context, goal *entity.IEPGoal) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddProgress(ctx context.Context, progress *entity.GoalProgress) error
	ListProgress(ctx context.Context, goalID uuid.UUID) ([]entity.GoalProgress, error)
}

func (r *GoalRepository) Create(ctx context.Context, goal *entity.IEPGoal) error {
	query := `
		INSERT INTO iep_goals (
			user_id, student_id, area, description, baseline, target_criterion,
			target_date, status, created_at, updated_at
		) VALUES (
			:user_id, :student_id, :area, :description, :baseline, :target_criterion,
			:target_date, :status, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, goal)
	if err != nil {
		logger.Error("GoalRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&goal.ID)
	}
	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.IEPGoal, error) {
	query := `SELECT * FROM iep_goals WHERE id = $1`

	var goal entity.IEPGoal
	err := r.DB.GetContext(ctx, &goal, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GoalRepository:GetByID:Error:", err)
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.IEPGoal, error) {
	query := `SELECT * FROM iep_goals WHERE student_id = $1 ORDER BY created_at ASC`

	var goals []entity.IEPGoal
	err := r.DB.SelectContext(ctx, &goals, query, studentID)
	if err != nil {
		logger.Error("GoalRepository:ListByStudent:Error:", err)
		return nil, err
	}
	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *entity.IEPGoal) error {
	query := `
		UPDATE iep_goals SET
			area = :area,
			description = :description,
			baseline = :baseline,
			target_criterion = :target_criterion,
			target_date = :target_date,
			status = :status,
			updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.DB.NamedExecContext(ctx, query, goal)
	if err != nil {
		logger.Error("GoalRepository:Update:Error:", err)
		return err
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM iep_goals WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("GoalRepository:Delete:Error:", err)
		return err
	}
	return nil
}

func (r *GoalRepository) AddProgress(ctx context.Context, progress *entity.GoalProgress) error {
	query := `
		INSERT INTO goal_progress (goal_id, note, percent, recorded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, progress.GoalID, progress.Note, progress.Percent, progress.RecordedAt).Scan(&progress.ID)
	if err != nil {
		logger.Error("GoalRepository:AddProgress:Error:", err)
		return err
	}
	return nil
}

func (r *GoalRepository) ListProgress(ctx context.Context, goalID uuid.UUID) ([]entity.GoalProgress, error) {
	query := `SELECT * FROM goal_progress WHERE goal_id = $1 ORDER BY recorded_at DESC`

	var entries []entity.GoalProgress
	err := r.DB.SelectContext(ctx, &entries, query, goalID)
	if err != nil {
		logger.Error("GoalRepository:ListProgress:Error:", err)
		return nil, err
	}
	return entries, nil
}
