package entity

import (
	"time"

	"github.com/google/uuid"

	"caseload-api/core/entity"
)

// SessionStatus is the play-session state machine. Sessions start
// in_progress and move to completed exactly once, on submit.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// Activity is a reusable auto-scored exercise definition.
type Activity struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	ShareCode   string    `db:"share_code" json:"share_code"`
	Description string    `db:"description" json:"description,omitempty"`
	entity.BaseEntity
}

// ActivityItem is one prompt inside an activity, with the answer that
// counts as correct.
type ActivityItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ActivityID     uuid.UUID `db:"activity_id" json:"activity_id"`
	Position       int       `db:"position" json:"position"`
	Prompt         string    `db:"prompt" json:"prompt"`
	ExpectedAnswer string    `db:"expected_answer" json:"expected_answer"`
}

// PlaySession is one run of an activity by a student.
type PlaySession struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	ActivityID   uuid.UUID     `db:"activity_id" json:"activity_id"`
	StudentID    uuid.UUID     `db:"student_id" json:"student_id"`
	UserID       uuid.UUID     `db:"user_id" json:"user_id"`
	Status       SessionStatus `db:"status" json:"status"`
	CorrectCount int           `db:"correct_count" json:"correct_count"`
	TotalCount   int           `db:"total_count" json:"total_count"`
	Percent      int           `db:"percent" json:"percent"`
	StartedAt    time.Time     `db:"started_at" json:"started_at"`
	CompletedAt  *time.Time    `db:"completed_at" json:"completed_at,omitempty"`
}

// SessionAnswer is the scored record of one item inside a session.
type SessionAnswer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SessionID uuid.UUID `db:"session_id" json:"session_id"`
	ItemID    uuid.UUID `db:"item_id" json:"item_id"`
	Given     string    `db:"given" json:"given"`
	Correct   bool      `db:"correct" json:"correct"`
}
