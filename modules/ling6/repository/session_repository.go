package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/modules/ling6/entity"
)

// SessionRepository handles Ling 6 session database operations.
type SessionRepository struct {
	DB database.Database
}

func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{DB: db}
}

// SessionRepositoryInterface defines the repository contract.
type SessionRepositoryInterface interface {
	CreateSession(ctx context.Context, session *entity.Ling6Session, trials []entity.Ling6Trial) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (*entity.Ling6Session, error)
	GetTrialsBySessionID(ctx context.Context, sessionID uuid.UUID) ([]entity.Ling6Trial, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Ling6Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *entity.Ling6Session, trials []entity.Ling6Trial) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("SessionRepository:CreateSession:Begin:Error:", err)
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO ling6_sessions (
			user_id, student_id, conducted_at, environment, device_worn,
			distance, notes, created_at, updated_at
		) VALUES (
			:user_id, :student_id, :conducted_at, :environment, :device_worn,
			:distance, :notes, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := tx.NamedQuery(query, session)
	if err != nil {
		logger.Error("SessionRepository:CreateSession:Insert:Error:", err)
		return err
	}
	if rows.Next() {
		if err := rows.Scan(&session.ID); err != nil {
			rows.Close()
			return err
		}
	}
	rows.Close()

	trialQuery := `
		INSERT INTO ling6_trials (session_id, sound, response, prompt_level, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i := range trials {
		trials[i].SessionID = session.ID
		if _, err := tx.ExecContext(ctx, trialQuery,
			trials[i].SessionID, trials[i].Sound, trials[i].Response,
			trials[i].PromptLevel, trials[i].Position); err != nil {
			logger.Error("SessionRepository:CreateSession:InsertTrial:Error:", err)
			return err
		}
	}

	return tx.Commit()
}

func (r *SessionRepository) GetSessionByID(ctx context.Context, id uuid.UUID) (*entity.Ling6Session, error) {
	query := `
		SELECT id, user_id, student_id, conducted_at, environment, device_worn,
		       distance, notes, created_at, updated_at
		FROM ling6_sessions WHERE id = $1
	`
	var session entity.Ling6Session
	err := r.DB.GetContext(ctx, &session, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SessionRepository:GetSessionByID:Error:", err)
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetTrialsBySessionID(ctx context.Context, sessionID uuid.UUID) ([]entity.Ling6Trial, error) {
	query := `
		SELECT id, session_id, sound, response, prompt_level, position
		FROM ling6_trials
		WHERE session_id = $1
		ORDER BY position ASC
	`
	var trials []entity.Ling6Trial
	err := r.DB.SelectContext(ctx, &trials, query, sessionID)
	if err != nil {
		logger.Error("SessionRepository:GetTrialsBySessionID:Error:", err)
		return nil, err
	}
	return trials, nil
}

func (r *SessionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Ling6Session, error) {
	query := `
		SELECT id, user_id, student_id, conducted_at, environment, device_worn,
		       distance, notes, created_at, updated_at
		FROM ling6_sessions
		WHERE student_id = $1
		ORDER BY conducted_at DESC
	`
	var sessions []entity.Ling6Session
	err := r.DB.SelectContext(ctx, &sessions, query, studentID)
	if err != nil {
		logger.Error("SessionRepository:ListByStudent:Error:", err)
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	// Trials cascade via FK.
	query := `DELETE FROM ling6_sessions WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("SessionRepository:DeleteSession:Error:", err)
		return err
	}
	return nil
}
