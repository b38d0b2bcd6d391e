package dto

import (
	"caseload-api/modules/activity/entity"
)

// ActivityItemInput is one prompt in a create/update request.
type ActivityItemInput struct {
	Prompt         string `json:"prompt" validate:"required,max=500"`
	ExpectedAnswer string `json:"expected_answer" validate:"required,max=500"`
}

// CreateActivityRequest defines a new auto-scored activity.
type CreateActivityRequest struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Items       []ActivityItemInput `json:"items" validate:"required,min=1,max=100,dive"`
}

// UpdateActivityRequest replaces an activity's details and item list.
type UpdateActivityRequest struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Items       []ActivityItemInput `json:"items" validate:"required,min=1,max=100,dive"`
}

// ActivityResponse bundles an activity with its items.
type ActivityResponse struct {
	Activity *entity.Activity      `json:"activity"`
	Items    []entity.ActivityItem `json:"items"`
}

// StartSessionRequest opens a play session for a student.
type StartSessionRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
}

// AnswerInput is one submitted answer, keyed by item ID.
type AnswerInput struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
	Given  string `json:"given" validate:"max=500"`
}

// SubmitSessionRequest completes a session with the student's answers.
type SubmitSessionRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,dive"`
}

// SessionSummaryResponse mirrors the post-play summary screen: the session
// score plus the per-item record.
type SessionSummaryResponse struct {
	Session *entity.PlaySession    `json:"session"`
	Answers []entity.SessionAnswer `json:"answers"`
}
