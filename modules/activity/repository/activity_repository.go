package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/modules/activity/entity"
)

// ActivityRepository handles activity and play-session database operations.
type ActivityRepository struct {
	DB database.Database
}

func NewActivityRepository(db database.Database) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

type ActivityRepositoryInterface interface {
	CreateActivity(ctx context.Context, activity *entity.Activity, items []entity.ActivityItem) error
	GetActivityByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	GetActivityByShareCode(ctx context.Context, code string) (*entity.Activity, error)
	ListActivities(ctx context.Context, userID uuid.UUID) ([]entity.Activity, error)
	GetItems(ctx context.Context, activityID uuid.UUID) ([]entity.ActivityItem, error)
	ReplaceItems(ctx context.Context, activity *entity.Activity, items []entity.ActivityItem) error
	DeleteActivity(ctx context.Context, id uuid.UUID) error

	CreateSession(ctx context.Context, session *entity.PlaySession) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (*entity.PlaySession, error)
	ListSessionsByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.PlaySession, error)
	CompleteSession(ctx context.Context, session *entity.PlaySession, answers []entity.SessionAnswer) error
	GetAnswers(ctx context.Context, sessionID uuid.UUID) ([]entity.SessionAnswer, error)
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *entity.Activity, items []entity.ActivityItem) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("ActivityRepository:CreateActivity:Begin:Error:", err)
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO activities (
			user_id, title, slug, share_code, description, created_at, updated_at
		) VALUES (
			:user_id, :title, :slug, :share_code, :description, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := tx.NamedQuery(query, activity)
	if err != nil {
		logger.Error("ActivityRepository:CreateActivity:Insert:Error:", err)
		return err
	}
	if rows.Next() {
		if err := rows.Scan(&activity.ID); err != nil {
			rows.Close()
			return err
		}
	}
	rows.Close()

	itemQuery := `
		INSERT INTO activity_items (activity_id, position, prompt, expected_answer)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range items {
		items[i].ActivityID = activity.ID
		items[i].Position = i
		if err := tx.QueryRowContext(ctx, itemQuery,
			items[i].ActivityID, items[i].Position, items[i].Prompt,
			items[i].ExpectedAnswer).Scan(&items[i].ID); err != nil {
			logger.Error("ActivityRepository:CreateActivity:InsertItem:Error:", err)
			return err
		}
	}

	return tx.Commit()
}

func (r *ActivityRepository) GetActivityByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	query := `SELECT * FROM activities WHERE id = $1`

	var activity entity.Activity
	err := r.DB.GetContext(ctx, &activity, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ActivityRepository:GetActivityByID:Error:", err)
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) GetActivityByShareCode(ctx context.Context, code string) (*entity.Activity, error) {
	query := `SELECT * FROM activities WHERE share_code = $1`

	var activity entity.Activity
	err := r.DB.GetContext(ctx, &activity, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ActivityRepository:GetActivityByShareCode:Error:", err)
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) ListActivities(ctx context.Context, userID uuid.UUID) ([]entity.Activity, error) {
	query := `SELECT * FROM activities WHERE user_id = $1 ORDER BY created_at DESC`

	var activities []entity.Activity
	err := r.DB.SelectContext(ctx, &activities, query, userID)
	if err != nil {
		logger.Error("ActivityRepository:ListActivities:Error:", err)
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) GetItems(ctx context.Context, activityID uuid.UUID) ([]entity.ActivityItem, error) {
	query := `SELECT * FROM activity_items WHERE activity_id = $1 ORDER BY position ASC`

	var items []entity.ActivityItem
	err := r.DB.SelectContext(ctx, &items, query, activityID)
	if err != nil {
		logger.Error("ActivityRepository:GetItems:Error:", err)
		return nil, err
	}
	return items, nil
}

// ReplaceItems updates the activity row and swaps its item list in one
// transaction. Past sessions keep their answer records; only future plays
// see the new items.
func (r *ActivityRepository) ReplaceItems(ctx context.Context, activity *entity.Activity, items []entity.ActivityItem) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("ActivityRepository:ReplaceItems:Begin:Error:", err)
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE activities SET
			title = :title,
			slug = :slug,
			description = :description,
			updated_at = NOW()
		WHERE id = :id
	`
	if _, err := tx.NamedExecContext(ctx, query, activity); err != nil {
		logger.Error("ActivityRepository:ReplaceItems:Update:Error:", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_items WHERE activity_id = $1`, activity.ID); err != nil {
		logger.Error("ActivityRepository:ReplaceItems:Clear:Error:", err)
		return err
	}

	itemQuery := `
		INSERT INTO activity_items (activity_id, position, prompt, expected_answer)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range items {
		items[i].ActivityID = activity.ID
		items[i].Position = i
		if err := tx.QueryRowContext(ctx, itemQuery,
			items[i].ActivityID, items[i].Position, items[i].Prompt,
			items[i].ExpectedAnswer).Scan(&items[i].ID); err != nil {
			logger.Error("ActivityRepository:ReplaceItems:Insert:Error:", err)
			return err
		}
	}

	return tx.Commit()
}

func (r *ActivityRepository) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	// Items and sessions cascade via FK.
	query := `DELETE FROM activities WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ActivityRepository:DeleteActivity:Error:", err)
		return err
	}
	return nil
}

func (r *ActivityRepository) CreateSession(ctx context.Context, session *entity.PlaySession) error {
	query := `
		INSERT INTO play_sessions (
			activity_id, student_id, user_id, status, correct_count,
			total_count, percent, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		session.ActivityID, session.StudentID, session.UserID, session.Status,
		session.CorrectCount, session.TotalCount, session.Percent,
		session.StartedAt).Scan(&session.ID)
	if err != nil {
		logger.Error("ActivityRepository:CreateSession:Error:", err)
		return err
	}
	return nil
}

func (r *ActivityRepository) GetSessionByID(ctx context.Context, id uuid.UUID) (*entity.PlaySession, error) {
	query := `SELECT * FROM play_sessions WHERE id = $1`

	var session entity.PlaySession
	err := r.DB.GetContext(ctx, &session, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ActivityRepository:GetSessionByID:Error:", err)
		return nil, err
	}
	return &session, nil
}

func (r *ActivityRepository) ListSessionsByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.PlaySession, error) {
	query := `SELECT * FROM play_sessions WHERE student_id = $1 ORDER BY started_at DESC`

	var sessions []entity.PlaySession
	err := r.DB.SelectContext(ctx, &sessions, query, studentID)
	if err != nil {
		logger.Error("ActivityRepository:ListSessionsByStudent:Error:", err)
		return nil, err
	}
	return sessions, nil
}

// CompleteSession writes the scored answers and flips the session to
// completed in one transaction.
func (r *ActivityRepository) CompleteSession(ctx context.Context, session *entity.PlaySession, answers []entity.SessionAnswer) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("ActivityRepository:CompleteSession:Begin:Error:", err)
		return err
	}
	defer tx.Rollback()

	answerQuery := `
		INSERT INTO session_answers (session_id, item_id, given, correct)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range answers {
		answers[i].SessionID = session.ID
		if err := tx.QueryRowContext(ctx, answerQuery,
			answers[i].SessionID, answers[i].ItemID, answers[i].Given,
			answers[i].Correct).Scan(&answers[i].ID); err != nil {
			logger.Error("ActivityRepository:CompleteSession:InsertAnswer:Error:", err)
			return err
		}
	}

	now := time.Now()
	session.CompletedAt = &now
	query := `
		UPDATE play_sessions SET
			status = $2,
			correct_count = $3,
			total_count = $4,
			percent = $5,
			completed_at = $6
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query,
		session.ID, session.Status, session.CorrectCount, session.TotalCount,
		session.Percent, session.CompletedAt); err != nil {
		logger.Error("ActivityRepository:CompleteSession:Update:Error:", err)
		return err
	}

	return tx.Commit()
}

func (r *ActivityRepository) GetAnswers(ctx context.Context, sessionID uuid.UUID) ([]entity.SessionAnswer, error) {
	query := `SELECT * FROM session_answers WHERE session_id = $1 ORDER BY id ASC`

	var answers []entity.SessionAnswer
	err := r.DB.SelectContext(ctx, &answers, query, sessionID)
	if err != nil {
		logger.Error("ActivityRepository:GetAnswers:Error:", err)
		return nil, err
	}
	return answers, nil
}
