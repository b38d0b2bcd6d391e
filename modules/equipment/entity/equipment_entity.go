package entity

import (
	"time"

	"github.com/google/uuid"

	"caseload-api/core/entity"
)

// EquipmentStatus tracks where a device currently is.
type EquipmentStatus string

const (
	EquipmentStatusAssigned EquipmentStatus = "assigned"
	EquipmentStatusInRepair EquipmentStatus = "in_repair"
	EquipmentStatusReturned EquipmentStatus = "returned"
	EquipmentStatusRetired  EquipmentStatus = "retired"
)

// Equipment is one tracked device (hearing aid, FM/DM system, cochlear
// implant processor, remote mic, etc).
type Equipment struct {
	UserID       uuid.UUID       `db:"user_id" json:"user_id"`
	StudentID    *uuid.UUID      `db:"student_id" json:"student_id,omitempty"` // current assignee
	DeviceType   string          `db:"device_type" json:"device_type"`
	Make         string          `db:"make" json:"make,omitempty"`
	Model        string          `db:"model" json:"model,omitempty"`
	SerialNumber string          `db:"serial_number" json:"serial_number,omitempty"`
	Status       EquipmentStatus `db:"status" json:"status"`
	Notes        string          `db:"notes" json:"notes,omitempty"`
	entity.BaseEntity
}

// EquipmentAssignment is one loan period of a device to a student.
type EquipmentAssignment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	EquipmentID uuid.UUID  `db:"equipment_id" json:"equipment_id"`
	StudentID   uuid.UUID  `db:"student_id" json:"student_id"`
	AssignedAt  time.Time  `db:"assigned_at" json:"assigned_at"`
	ReturnedAt  *time.Time `db:"returned_at" json:"returned_at,omitempty"`
	Note        string     `db:"note" json:"note,omitempty"`
}

// EquipmentAttachment is an uploaded file (photo, loan form) tied to a device.
// ObjectKey is the S3 key; the file bytes never pass through this service.
type EquipmentAttachment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EquipmentID uuid.UUID `db:"equipment_id" json:"equipment_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ObjectKey   string    `db:"object_key" json:"-"`
	ContentType string    `db:"content_type" json:"content_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
