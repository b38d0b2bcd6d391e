package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"caseload-api/core/errors"
	"caseload-api/core/logger"
	"caseload-api/core/storage"
	"caseload-api/core/utils"
	"caseload-api/modules/equipment/dto"
	"caseload-api/modules/equipment/entity"
	"caseload-api/modules/equipment/repository"
)

// Notifier is the slice of the notification service this module needs.
// Declared here to keep the module dependency one-way.
type Notifier interface {
	CreateForUser(ctx context.Context, userID uuid.UUID, title, message, notifType string) error
}

type EquipmentServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateEquipmentRequest) (*entity.Equipment, *errors.AppError)
	Get(ctx context.Context, userID, equipmentID uuid.UUID) (*dto.EquipmentResponse, *errors.AppError)
	List(ctx context.Context, userID uuid.UUID) ([]entity.Equipment, *errors.AppError)
	ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.Equipment, *errors.AppError)
	Update(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.UpdateEquipmentRequest) (*entity.Equipment, *errors.AppError)
	Delete(ctx context.Context, userID, equipmentID uuid.UUID) *errors.AppError

	Assign(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.AssignEquipmentRequest) (*entity.Equipment, *errors.AppError)
	Return(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.ReturnEquipmentRequest) (*entity.Equipment, *errors.AppError)

	CreateAttachment(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.CreateAttachmentRequest) (*dto.AttachmentUploadResponse, *errors.AppError)
	GetAttachmentURL(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.AttachmentDownloadResponse, *errors.AppError)
	DeleteAttachment(ctx context.Context, userID, attachmentID uuid.UUID) *errors.AppError
}

type equipmentService struct {
	repo     repository.EquipmentRepositoryInterface
	store    *storage.Storage
	notifier Notifier
}

func NewEquipmentService(repo repository.EquipmentRepositoryInterface, store *storage.Storage, notifier Notifier) EquipmentServiceInterface {
	return &equipmentService{
		repo:     repo,
		store:    store,
		notifier: notifier,
	}
}

func (s *equipmentService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateEquipmentRequest) (*entity.Equipment, *errors.AppError) {
	logger.Info("EquipmentService:Create:Start", "userID", userID, "deviceType", req.DeviceType)

	now := time.Now()
	item := &entity.Equipment{
		UserID:       userID,
		DeviceType:   req.DeviceType,
		Make:         req.Make,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Status:       entity.EquipmentStatusReturned,
		Notes:        req.Notes,
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create equipment", err)
	}
	return item, nil
}

func (s *equipmentService) Get(ctx context.Context, userID, equipmentID uuid.UUID) (*dto.EquipmentResponse, *errors.AppError) {
	item, appErr := s.getOwned(ctx, userID, equipmentID)
	if appErr != nil {
		return nil, appErr
	}

	assignments, err := s.repo.ListAssignments(ctx, equipmentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load assignments", err)
	}
	attachments, err := s.repo.ListAttachments(ctx, equipmentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load attachments", err)
	}

	return &dto.EquipmentResponse{
		Equipment:   item,
		Assignments: assignments,
		Attachments: attachments,
	}, nil
}

func (s *equipmentService) List(ctx context.Context, userID uuid.UUID) ([]entity.Equipment, *errors.AppError) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list equipment", err)
	}
	return items, nil
}

func (s *equipmentService) ListByStudent(ctx context.Context, userID, studentID uuid.UUID) ([]entity.Equipment, *errors.AppError) {
	items, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list equipment", err)
	}
	// Devices always belong to the caseload owner; filter stragglers anyway.
	owned := make([]entity.Equipment, 0, len(items))
	for _, it := range items {
		if it.UserID == userID {
			owned = append(owned, it)
		}
	}
	return owned, nil
}

func (s *equipmentService) Update(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.UpdateEquipmentRequest) (*entity.Equipment, *errors.AppError) {
	item, appErr := s.getOwned(ctx, userID, equipmentID)
	if appErr != nil {
		return nil, appErr
	}

	status := entity.EquipmentStatus(req.Status)
	if status != entity.EquipmentStatusAssigned && item.Status == entity.EquipmentStatusAssigned {
		// Leaving assigned through a plain edit closes the loan too.
		if err := s.repo.CloseOpenAssignment(ctx, equipmentID, time.Now()); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to close assignment", err)
		}
		item.StudentID = nil
	}

	item.DeviceType = req.DeviceType
	item.Make = req.Make
	item.Model = req.Model
	item.SerialNumber = req.SerialNumber
	item.Status = status
	item.Notes = req.Notes

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update equipment", err)
	}
	return item, nil
}

func (s *equipmentService) Delete(ctx context.Context, userID, equipmentID uuid.UUID) *errors.AppError {
	if _, appErr := s.getOwned(ctx, userID, equipmentID); appErr != nil {
		return appErr
	}

	attachments, err := s.repo.ListAttachments(ctx, equipmentID)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to load attachments", err)
	}
	for _, att := range attachments {
		if err := s.store.DeleteObject(ctx, att.ObjectKey); err != nil {
			logger.Warn("EquipmentService:Delete:OrphanObject", "key", att.ObjectKey, "error", err)
		}
	}

	if err := s.repo.Delete(ctx, equipmentID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete equipment", err)
	}
	return nil
}

func (s *equipmentService) Assign(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.AssignEquipmentRequest) (*entity.Equipment, *errors.AppError) {
	logger.Info("EquipmentService:Assign:Start", "equipmentID", equipmentID, "studentID", req.StudentID)

	item, appErr := s.getOwned(ctx, userID, equipmentID)
	if appErr != nil {
		return nil, appErr
	}
	if item.Status == entity.EquipmentStatusRetired {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Retired equipment cannot be assigned", nil)
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid student ID", err)
	}

	now := time.Now()
	if item.Status == entity.EquipmentStatusAssigned {
		// Direct reassignment closes the previous loan first.
		if err := s.repo.CloseOpenAssignment(ctx, equipmentID, now); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to close previous assignment", err)
		}
	}

	assignment := &entity.EquipmentAssignment{
		EquipmentID: equipmentID,
		StudentID:   studentID,
		AssignedAt:  now,
		Note:        req.Note,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create assignment", err)
	}

	item.StudentID = &studentID
	item.Status = entity.EquipmentStatusAssigned
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update equipment", err)
	}

	s.notify(ctx, userID, item, "Equipment assigned",
		fmt.Sprintf("%s %s %s assigned", item.DeviceType, item.Make, item.Model))

	return item, nil
}

func (s *equipmentService) Return(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.ReturnEquipmentRequest) (*entity.Equipment, *errors.AppError) {
	item, appErr := s.getOwned(ctx, userID, equipmentID)
	if appErr != nil {
		return nil, appErr
	}
	if item.Status != entity.EquipmentStatusAssigned {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Equipment is not currently assigned", nil)
	}

	if err := s.repo.CloseOpenAssignment(ctx, equipmentID, time.Now()); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to close assignment", err)
	}

	item.StudentID = nil
	item.Status = entity.EquipmentStatusReturned
	if req.Note != "" {
		item.Notes = req.Note
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update equipment", err)
	}

	s.notify(ctx, userID, item, "Equipment returned",
		fmt.Sprintf("%s %s %s returned", item.DeviceType, item.Make, item.Model))

	return item, nil
}

func (s *equipmentService) CreateAttachment(ctx context.Context, userID, equipmentID uuid.UUID, req *dto.CreateAttachmentRequest) (*dto.AttachmentUploadResponse, *errors.AppError) {
	if _, appErr := s.getOwned(ctx, userID, equipmentID); appErr != nil {
		return nil, appErr
	}

	key := fmt.Sprintf("equipment/%s/%s-%s", equipmentID, utils.GenerateID(), req.FileName)
	uploadURL, err := s.store.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to presign upload", err)
	}

	att := &entity.EquipmentAttachment{
		EquipmentID: equipmentID,
		FileName:    req.FileName,
		ObjectKey:   key,
		ContentType: req.ContentType,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.AddAttachment(ctx, att); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to record attachment", err)
	}

	return &dto.AttachmentUploadResponse{
		Attachment: att,
		UploadURL:  uploadURL,
	}, nil
}

func (s *equipmentService) GetAttachmentURL(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.AttachmentDownloadResponse, *errors.AppError) {
	att, appErr := s.getOwnedAttachment(ctx, userID, attachmentID)
	if appErr != nil {
		return nil, appErr
	}

	downloadURL, err := s.store.PresignDownload(ctx, att.ObjectKey)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to presign download", err)
	}

	return &dto.AttachmentDownloadResponse{
		Attachment:  att,
		DownloadURL: downloadURL,
	}, nil
}

func (s *equipmentService) DeleteAttachment(ctx context.Context, userID, attachmentID uuid.UUID) *errors.AppError {
	att, appErr := s.getOwnedAttachment(ctx, userID, attachmentID)
	if appErr != nil {
		return appErr
	}

	if err := s.store.DeleteObject(ctx, att.ObjectKey); err != nil {
		logger.Warn("EquipmentService:DeleteAttachment:OrphanObject", "key", att.ObjectKey, "error", err)
	}
	if err := s.repo.DeleteAttachment(ctx, attachmentID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete attachment", err)
	}
	return nil
}

func (s *equipmentService) getOwned(ctx context.Context, userID, equipmentID uuid.UUID) (*entity.Equipment, *errors.AppError) {
	item, err := s.repo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get equipment", err)
	}
	if item == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Equipment not found", nil)
	}
	if item.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Equipment belongs to another user", nil)
	}
	return item, nil
}

func (s *equipmentService) getOwnedAttachment(ctx context.Context, userID, attachmentID uuid.UUID) (*entity.EquipmentAttachment, *errors.AppError) {
	att, err := s.repo.GetAttachmentByID(ctx, attachmentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get attachment", err)
	}
	if att == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Attachment not found", nil)
	}
	if _, appErr := s.getOwned(ctx, userID, att.EquipmentID); appErr != nil {
		return nil, appErr
	}
	return att, nil
}

func (s *equipmentService) notify(ctx context.Context, userID uuid.UUID, item *entity.Equipment, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CreateForUser(ctx, userID, title, message, "equipment"); err != nil {
		logger.Warn("EquipmentService:Notify:Error", "equipmentID", item.ID, "error", err)
	}
}
