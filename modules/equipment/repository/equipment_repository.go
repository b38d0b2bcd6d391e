package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/modules/equipment/entity"
)

type EquipmentRepository struct {
	DB database.Database
}

func NewEquipmentRepository(db database.Database) *EquipmentRepository {
	return &EquipmentRepository{DB: db}
}

type EquipmentRepositoryInterface interface {
	Create(ctx context.Context, item *entity.Equipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Equipment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Equipment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Equipment, error)
	Update(ctx context.Context, item *entity.Equipment) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateAssignment(ctx context.Context, a *entity.EquipmentAssignment) error
	CloseOpenAssignment(ctx context.Context, equipmentID uuid.UUID, returnedAt time.Time) error
	ListAssignments(ctx context.Context, equipmentID uuid.UUID) ([]entity.EquipmentAssignment, error)

	AddAttachment(ctx context.Context, att *entity.EquipmentAttachment) error
	GetAttachmentByID(ctx context.Context, id uuid.UUID) (*entity.EquipmentAttachment, error)
	ListAttachments(ctx context.Context, equipmentID uuid.UUID) ([]entity.EquipmentAttachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

func (r *EquipmentRepository) Create(ctx context.Context, item *entity.Equipment) error {
	query := `
		INSERT INTO equipment (
			user_id, student_id, device_type, make, model, serial_number,
			status, notes, created_at, updated_at
		) VALUES (
			:user_id, :student_id, :device_type, :make, :model, :serial_number,
			:status, :notes, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, item)
	if err != nil {
		logger.Error("EquipmentRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&item.ID)
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Equipment, error) {
	query := `SELECT * FROM equipment WHERE id = $1`

	var item entity.Equipment
	err := r.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EquipmentRepository:GetByID:Error:", err)
		return nil, err
	}
	return &item, nil
}

func (r *EquipmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Equipment, error) {
	query := `SELECT * FROM equipment WHERE user_id = $1 ORDER BY created_at ASC`

	var items []entity.Equipment
	err := r.DB.SelectContext(ctx, &items, query, userID)
	if err != nil {
		logger.Error("EquipmentRepository:ListByUser:Error:", err)
		return nil, err
	}
	return items, nil
}

func (r *EquipmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Equipment, error) {
	query := `SELECT * FROM equipment WHERE student_id = $1 ORDER BY created_at ASC`

	var items []entity.Equipment
	err := r.DB.SelectContext(ctx, &items, query, studentID)
	if err != nil {
		logger.Error("EquipmentRepository:ListByStudent:Error:", err)
		return nil, err
	}
	return items, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, item *entity.Equipment) error {
	query := `
		UPDATE equipment SET
			student_id = :student_id,
			device_type = :device_type,
			make = :make,
			model = :model,
			serial_number = :serial_number,
			status = :status,
			notes = :notes,
			updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.DB.NamedExecContext(ctx, query, item)
	if err != nil {
		logger.Error("EquipmentRepository:Update:Error:", err)
		return err
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM equipment WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EquipmentRepository:Delete:Error:", err)
		return err
	}
	return nil
}

func (r *EquipmentRepository) CreateAssignment(ctx context.Context, a *entity.EquipmentAssignment) error {
	query := `
		INSERT INTO equipment_assignments (equipment_id, student_id, assigned_at, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.EquipmentID, a.StudentID, a.AssignedAt, a.Note).Scan(&a.ID)
	if err != nil {
		logger.Error("EquipmentRepository:CreateAssignment:Error:", err)
		return err
	}
	return nil
}

func (r *EquipmentRepository) CloseOpenAssignment(ctx context.Context, equipmentID uuid.UUID, returnedAt time.Time) error {
	query := `
		UPDATE equipment_assignments
		SET returned_at = $2
		WHERE equipment_id = $1 AND returned_at IS NULL
	`
	err := r.DB.ExecContext(ctx, query, equipmentID, returnedAt)
	if err != nil {
		logger.Error("EquipmentRepository:CloseOpenAssignment:Error:", err)
		return err
	}
	return nil
}

func (r *EquipmentRepository) ListAssignments(ctx context.Context, equipmentID uuid.UUID) ([]entity.EquipmentAssignment, error) {
	query := `SELECT * FROM equipment_assignments WHERE equipment_id = $1 ORDER BY assigned_at DESC`

	var entries []entity.EquipmentAssignment
	err := r.DB.SelectContext(ctx, &entries, query, equipmentID)
	if err != nil {
		logger.Error("EquipmentRepository:ListAssignments:Error:", err)
		return nil, err
	}
	return entries, nil
}

func (r *EquipmentRepository) AddAttachment(ctx context.Context, att *entity.EquipmentAttachment) error {
	query := `
		INSERT INTO equipment_attachments (equipment_id, file_name, object_key, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, att.EquipmentID, att.FileName, att.ObjectKey, att.ContentType, att.CreatedAt).Scan(&att.ID)
	if err != nil {
		logger.Error("EquipmentRepository:AddAttachment:Error:", err)
		return err
	}
	return nil
}

func (r *EquipmentRepository) GetAttachmentByID(ctx context.Context, id uuid.UUID) (*entity.EquipmentAttachment, error) {
	query := `SELECT * FROM equipment_attachments WHERE id = $1`

	var att entity.EquipmentAttachment
	err := r.DB.GetContext(ctx, &att, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EquipmentRepository:GetAttachmentByID:Error:", err)
		return nil, err
	}
	return &att, nil
}

func (r *EquipmentRepository) ListAttachments(ctx context.Context, equipmentID uuid.UUID) ([]entity.EquipmentAttachment, error) {
	query := `SELECT * FROM equipment_attachments WHERE equipment_id = $1 ORDER BY created_at DESC`

	var entries []entity.EquipmentAttachment
	err := r.DB.SelectContext(ctx, &entries, query, equipmentID)
	if err != nil {
		logger.Error("EquipmentRepository:ListAttachments:Error:", err)
		return nil, err
	}
	return entries, nil
}

func (r *EquipmentRepository) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM equipment_attachments WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EquipmentRepository:DeleteAttachment:Error:", err)
		return err
	}
	return nil
}
