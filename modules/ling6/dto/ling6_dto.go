package dto

import (
	"time"

	"caseload-api/modules/ling6/entity"
)

// TrialRequest is one sound presentation submitted by the client.
type TrialRequest struct {
	Sound       string `json:"sound" validate:"required,oneof=m oo ah ee sh s"`
	Response    string `json:"response" validate:"required,oneof=identified detected incorrect no_response"`
	PromptLevel string `json:"prompt_level" validate:"omitempty,oneof=independent repetition closed_set"`
}

// CreateSessionRequest records a completed listening check.
type CreateSessionRequest struct {
	StudentID   string         `json:"student_id" validate:"required,uuid"`
	ConductedAt string         `json:"conducted_at"` // RFC3339, defaults to now
	Environment string         `json:"environment" validate:"omitempty,oneof=quiet noise"`
	DeviceWorn  string         `json:"device_worn"`
	Distance    string         `json:"distance"`
	Notes       string         `json:"notes"`
	Trials      []TrialRequest `json:"trials" validate:"dive"`
}

// SessionResponse is a session with its trials and computed summary.
type SessionResponse struct {
	ID          string              `json:"id"`
	StudentID   string              `json:"student_id"`
	ConductedAt time.Time           `json:"conducted_at"`
	Environment string              `json:"environment,omitempty"`
	DeviceWorn  string              `json:"device_worn,omitempty"`
	Distance    string              `json:"distance,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	Trials      []entity.Ling6Trial `json:"trials,omitempty"`
	Summary     entity.Summary      `json:"summary"`
	CreatedAt   time.Time           `json:"created_at"`
}
