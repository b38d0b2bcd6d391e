package entity

import (
	"time"

	"github.com/google/uuid"

	"caseload-api/core/entity"
)

// ServiceLog records delivered service minutes for one student on one date.
type ServiceLog struct {
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	StudentID      uuid.UUID  `db:"student_id" json:"student_id"`
	ServiceDate    time.Time  `db:"service_date" json:"service_date"`
	DirectMinutes  int        `db:"direct_minutes" json:"direct_minutes"`
	ConsultMinutes int        `db:"consult_minutes" json:"consult_minutes"`
	Setting        string     `db:"setting" json:"setting,omitempty"`
	EventID        *uuid.UUID `db:"event_id" json:"event_id,omitempty"` // weak link to a calendar event
	Note           string     `db:"note" json:"note,omitempty"`
	entity.BaseEntity
}

// MonthlyTotal is aggregated service minutes for one calendar month.
type MonthlyTotal struct {
	Month          string `db:"month" json:"month"` // YYYY-MM
	DirectMinutes  int    `db:"direct_minutes" json:"direct_minutes"`
	ConsultMinutes int    `db:"consult_minutes" json:"consult_minutes"`
	Entries        int    `db:"entries" json:"entries"`
}
