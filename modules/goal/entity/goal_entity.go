package entity

import (
	"time"

	"github.com/google/uuid"

	"caseload-api/core/entity"
)

// GoalStatus tracks the lifecycle of an IEP goal.
type GoalStatus string

const (
	GoalStatusActive       GoalStatus = "active"
	GoalStatusMet          GoalStatus = "met"
	GoalStatusDiscontinued GoalStatus = "discontinued"
)

// IEPGoal is one annual goal on a student's IEP.
type IEPGoal struct {
	UserID          uuid.UUID  `db:"user_id" json:"user_id"`
	StudentID       uuid.UUID  `db:"student_id" json:"student_id"`
	Area            string     `db:"area" json:"area"` // self-advocacy, listening skills...
	Description     string     `db:"description" json:"description"`
	Baseline        string     `db:"baseline" json:"baseline,omitempty"`
	TargetCriterion string     `db:"target_criterion" json:"target_criterion,omitempty"`
	TargetDate      *time.Time `db:"target_date" json:"target_date,omitempty"`
	Status          GoalStatus `db:"status" json:"status"`
	entity.BaseEntity
}

// GoalProgress is one dated progress entry against a goal.
type GoalProgress struct {
	ID         uuid.UUID `db:"id" json:"id"`
	GoalID     uuid.UUID `db:"goal_id" json:"goal_id"`
	Note       string    `db:"note" json:"note"`
	Percent    int       `db:"percent" json:"percent"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}
