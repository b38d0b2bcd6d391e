package dto

import (
	"caseload-api/modules/equipment/entity"
)

// CreateEquipmentRequest registers a new device.
type CreateEquipmentRequest struct {
	DeviceType   string `json:"device_type" validate:"required,max=100"`
	Make         string `json:"make" validate:"max=100"`
	Model        string `json:"model" validate:"max=100"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
	Notes        string `json:"notes" validate:"max=2000"`
}

// UpdateEquipmentRequest edits device details or moves it between
// non-assignment statuses (in_repair, retired).
type UpdateEquipmentRequest struct {
	DeviceType   string `json:"device_type" validate:"required,max=100"`
	Make         string `json:"make" validate:"max=100"`
	Model        string `json:"model" validate:"max=100"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
	Status       string `json:"status" validate:"required,oneof=assigned in_repair returned retired"`
	Notes        string `json:"notes" validate:"max=2000"`
}

// AssignEquipmentRequest loans a device to a student.
type AssignEquipmentRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Note      string `json:"note" validate:"max=1000"`
}

// ReturnEquipmentRequest closes the open loan.
type ReturnEquipmentRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

// CreateAttachmentRequest asks for a presigned upload slot for a file.
type CreateAttachmentRequest struct {
	FileName    string `json:"file_name" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,max=100"`
}

// AttachmentUploadResponse carries the stored record plus a presigned PUT
// URL the client uploads the file bytes to directly.
type AttachmentUploadResponse struct {
	Attachment *entity.EquipmentAttachment `json:"attachment"`
	UploadURL  string                      `json:"upload_url"`
}

// AttachmentDownloadResponse carries a presigned GET URL.
type AttachmentDownloadResponse struct {
	Attachment  *entity.EquipmentAttachment `json:"attachment"`
	DownloadURL string                      `json:"download_url"`
}

// EquipmentResponse bundles a device with its loan history.
type EquipmentResponse struct {
	Equipment   *entity.Equipment            `json:"equipment"`
	Assignments []entity.EquipmentAssignment `json:"assignments"`
	Attachments []entity.EquipmentAttachment `json:"attachments"`
}
