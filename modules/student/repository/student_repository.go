package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/core/params"
	"caseload-api/modules/student/entity"
)

type StudentRepository struct {
	DB database.Database
}

func NewStudentRepository(db database.Database) *StudentRepository {
	return &StudentRepository{DB: db}
}

type StudentRepositoryInterface interface {
	Create(ctx context.Context, student *entity.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	ListByUser(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*entity.PaginatedStudentEntity, error)
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func (r *StudentRepository) Create(ctx context.Context, student *entity.Student) error {
	query := `
		INSERT INTO students (
			user_id, first_name, last_name, grade_level, school, district,
			hearing_left, hearing_right, amplification, eligibility, active,
			notes, created_at, updated_at
		) VALUES (
			:user_id, :first_name, :last_name, :grade_level, :school, :district,
			:hearing_left, :hearing_right, :amplification, :eligibility, :active,
			:notes, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, student)
	if err != nil {
		logger.Error("StudentRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&student.ID)
	}
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	query := `SELECT * FROM students WHERE id = $1`

	var student entity.Student
	err := r.DB.GetContext(ctx, &student, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("StudentRepository:GetByID:Error:", err)
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) ListByUser(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*entity.PaginatedStudentEntity, error) {
	baseQuery := `FROM students WHERE user_id = $1`
	args := []any{userID}

	if qp.Search != "" {
		baseQuery += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR school ILIKE $2)`
		args = append(args, "%"+qp.Search+"%")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, args...); err != nil {
		logger.Error("StudentRepository:ListByUser:Count:Error:", err)
		return nil, err
	}

	query := `SELECT * ` + baseQuery + ` ORDER BY last_name ASC, first_name ASC`
	if qp.Search != "" {
		query += ` LIMIT $3 OFFSET $4`
	} else {
		query += ` LIMIT $2 OFFSET $3`
	}
	args = append(args, qp.PageSize, qp.Offset())

	var students []entity.Student
	if err := r.DB.SelectContext(ctx, &students, query, args...); err != nil {
		logger.Error("StudentRepository:ListByUser:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedStudentEntity{
		Items:      students,
		TotalItems: totalItems,
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

func (r *StudentRepository) Update(ctx context.Context, student *entity.Student) error {
	query := `
		UPDATE students SET
			first_name = :first_name,
			last_name = :last_name,
			grade_level = :grade_level,
			school = :school,
			district = :district,
			hearing_left = :hearing_left,
			hearing_right = :hearing_right,
			amplification = :amplification,
			eligibility = :eligibility,
			active = :active,
			notes = :notes,
			updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.DB.NamedExecContext(ctx, query, student)
	if err != nil {
		logger.Error("StudentRepository:Update:Error:", err)
		return err
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM students WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("StudentRepository:Delete:Error:", err)
		return err
	}
	return nil
}
