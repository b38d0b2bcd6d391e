package dto

import "caseload-api/modules/goal/entity"

// CreateGoalRequest for adding an IEP goal to a student.
type CreateGoalRequest struct {
	StudentID       string `json:"student_id" validate:"required,uuid"`
	Area            string `json:"area" validate:"required"`
	Description     string `json:"description" validate:"required"`
	Baseline        string `json:"baseline"`
	TargetCriterion string `json:"target_criterion"`
	TargetDate      string `json:"target_date"` // YYYY-MM-DD
}

// UpdateGoalRequest edits an existing goal.
type UpdateGoalRequest struct {
	Area            string `json:"area" validate:"required"`
	Description     string `json:"description" validate:"required"`
	Baseline        string `json:"baseline"`
	TargetCriterion string `json:"target_criterion"`
	TargetDate      string `json:"target_date"` // YYYY-MM-DD
	Status          string `json:"status" validate:"required,oneof=active met discontinued"`
}

// AddProgressRequest appends a dated progress entry to a goal.
type AddProgressRequest struct {
	Note    string `json:"note" validate:"required"`
	Percent int    `json:"percent" validate:"min=0,max=100"`
}

// GoalResponse is a goal with its progress history.
type GoalResponse struct {
	Goal     entity.IEPGoal        `json:"goal"`
	Progress []entity.GoalProgress `json:"progress"`
}
