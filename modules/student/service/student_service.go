package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	coreEntity "caseload-api/core/entity"
	"caseload-api/core/errors"
	"caseload-api/core/logger"
	"caseload-api/core/params"
	"caseload-api/modules/student/dto"
	"caseload-api/modules/student/entity"
	"caseload-api/modules/student/repository"
)

type StudentServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateStudentRequest) (*entity.Student, *errors.AppError)
	Get(ctx context.Context, userID, studentID uuid.UUID) (*entity.Student, *errors.AppError)
	List(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*entity.PaginatedStudentEntity, *errors.AppError)
	Update(ctx context.Context, userID, studentID uuid.UUID, req *dto.UpdateStudentRequest) (*entity.Student, *errors.AppError)
	Delete(ctx context.Context, userID, studentID uuid.UUID) *errors.AppError
}

type studentService struct {
	repo repository.StudentRepositoryInterface
}

func NewStudentService(repo repository.StudentRepositoryInterface) StudentServiceInterface {
	return &studentService{repo: repo}
}

func (s *studentService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateStudentRequest) (*entity.Student, *errors.AppError) {
	now := time.Now()
	student := &entity.Student{
		UserID:        userID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		GradeLevel:    req.GradeLevel,
		School:        req.School,
		District:      req.District,
		HearingLeft:   req.HearingLeft,
		HearingRight:  req.HearingRight,
		Amplification: req.Amplification,
		Eligibility:   req.Eligibility,
		Active:        true,
		Notes:         req.Notes,
		BaseEntity:    coreEntity.BaseEntity{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.repo.Create(ctx, student); err != nil {
		logger.Error("StudentService:Create:Error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create student", err)
	}
	return student, nil
}

func (s *studentService) Get(ctx context.Context, userID, studentID uuid.UUID) (*entity.Student, *errors.AppError) {
	return s.getOwned(ctx, userID, studentID)
}

func (s *studentService) List(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*entity.PaginatedStudentEntity, *errors.AppError) {
	result, err := s.repo.ListByUser(ctx, userID, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list students", err)
	}
	return result, nil
}

func (s *studentService) Update(ctx context.Context, userID, studentID uuid.UUID, req *dto.UpdateStudentRequest) (*entity.Student, *errors.AppError) {
	student, appErr := s.getOwned(ctx, userID, studentID)
	if appErr != nil {
		return nil, appErr
	}

	student.FirstName = strings.TrimSpace(req.FirstName)
	student.LastName = strings.TrimSpace(req.LastName)
	student.GradeLevel = req.GradeLevel
	student.School = req.School
	student.District = req.District
	student.HearingLeft = req.HearingLeft
	student.HearingRight = req.HearingRight
	student.Amplification = req.Amplification
	student.Eligibility = req.Eligibility
	student.Active = req.Active
	student.Notes = req.Notes

	if err := s.repo.Update(ctx, student); err != nil {
		logger.Error("StudentService:Update:Error", err, "student_id", studentID)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update student", err)
	}
	return student, nil
}

// Delete removes the student record only. Calendar events that reference the
// student keep their weak reference; no cascade.
func (s *studentService) Delete(ctx context.Context, userID, studentID uuid.UUID) *errors.AppError {
	if _, appErr := s.getOwned(ctx, userID, studentID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, studentID); err != nil {
		logger.Error("StudentService:Delete:Error", err, "student_id", studentID)
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete student", err)
	}
	return nil
}

func (s *studentService) getOwned(ctx context.Context, userID, studentID uuid.UUID) (*entity.Student, *errors.AppError) {
	student, err := s.repo.GetByID(ctx, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get student", err)
	}
	if student == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Student not found", nil)
	}
	if student.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Student belongs to another caseload", nil)
	}
	return student, nil
}
