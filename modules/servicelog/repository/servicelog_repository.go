package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/modules/servicelog/entity"
)

type ServiceLogRepository struct {
	DB database.Database
}

func NewServiceLogRepository(db database.Database) *ServiceLogRepository {
	return &ServiceLogRepository{DB: db}
}

type ServiceLogRepositoryInterface interface {
	Create(ctx context.Context, log *entity.ServiceLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceLog, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.ServiceLog, error)
	Update(ctx context.Context, log *entity.ServiceLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	MonthlyTotals(ctx context.Context, userID, studentID uuid.UUID) ([]entity.MonthlyTotal, error)
}

func (r *ServiceLogRepository) Create(ctx context.Context, log *entity.ServiceLog) error {
	query := `
		INSERT INTO service_logs (
			user_id, student_id, service_date, direct_minutes, consult_minutes,
			setting, event_id, note, created_at, updated_at
		) VALUES (
			:user_id, :student_id, :service_date, :direct_minutes, :consult_minutes,
			:setting, :event_id, :note, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, log)
	if err != nil {
		logger.Error("ServiceLogRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&log.ID)
	}
	return nil
}

func (r *ServiceLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceLog, error) {
	query := `SELECT * FROM service_logs WHERE id = $1`

	var log entity.ServiceLog
	err := r.DB.GetContext(ctx, &log, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ServiceLogRepository:GetByID:Error:", err)
		return nil, err
	}
	return &log, nil
}

func (r *ServiceLogRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.ServiceLog, error) {
	query := `SELECT * FROM service_logs WHERE student_id = $1 ORDER BY service_date DESC`

	var logs []entity.ServiceLog
	err := r.DB.SelectContext(ctx, &logs, query, studentID)
	if err != nil {
		logger.Error("ServiceLogRepository:ListByStudent:Error:", err)
		return nil, err
	}
	return logs, nil
}

func (r *ServiceLogRepository) Update(ctx context.Context, log *entity.ServiceLog) error {
	query := `
		UPDATE service_logs SET
			service_date = :service_date,
			direct_minutes = :direct_minutes,
			consult_minutes = :consult_minutes,
			setting = :setting,
			event_id = :event_id,
			note = :note,
			updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.DB.NamedExecContext(ctx, query, log)
	if err != nil {
		logger.Error("ServiceLogRepository:Update:Error:", err)
		return err
	}
	return nil
}

func (r *ServiceLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM service_logs WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ServiceLogRepository:Delete:Error:", err)
		return err
	}
	return nil
}

func (r *ServiceLogRepository) MonthlyTotals(ctx context.Context, userID, studentID uuid.UUID) ([]entity.MonthlyTotal, error) {
	query := `
		SELECT to_char(service_date, 'YYYY-MM') AS month,
		       COALESCE(SUM(direct_minutes), 0) AS direct_minutes,
		       COALESCE(SUM(consult_minutes), 0) AS consult_minutes,
		       COUNT(*) AS entries
		FROM service_logs
		WHERE user_id = $1 AND student_id = $2
		GROUP BY to_char(service_date, 'YYYY-MM')
		ORDER BY month DESC
	`
	var totals []entity.MonthlyTotal
	err := r.DB.SelectContext(ctx, &totals, query, userID, studentID)
	if err != nil {
		logger.Error("ServiceLogRepository:MonthlyTotals:Error:", err)
		return nil, err
	}
	return totals, nil
}
