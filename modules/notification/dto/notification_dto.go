package dto

import (
	"github.com/google/uuid"

	"caseload-api/modules/notification/entity"
)

// MarkAsReadRequest selects which notifications to mark as read.
type MarkAsReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// CreateNotificationRequest is the internal payload for writing a
// notification row. Only other modules produce it; there is no public
// create route.
type CreateNotificationRequest struct {
	UserID  uuid.UUID               `json:"user_id"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    entity.NotificationType `json:"type"`
	Data    entity.JSONB            `json:"data,omitempty"`
}
