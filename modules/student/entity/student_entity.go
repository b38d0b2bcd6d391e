package entity

import (
	"github.com/google/uuid"

	"caseload-api/core/entity"
)

// Student is one caseload record. Deleting a student never cascades to
// calendar events; events keep a weak reference only.
type Student struct {
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	GradeLevel    string    `db:"grade_level" json:"grade_level,omitempty"`
	School        string    `db:"school" json:"school,omitempty"`
	District      string    `db:"district" json:"district,omitempty"`
	HearingLeft   string    `db:"hearing_left" json:"hearing_left,omitempty"`
	HearingRight  string    `db:"hearing_right" json:"hearing_right,omitempty"`
	Amplification string    `db:"amplification" json:"amplification,omitempty"`
	Eligibility   string    `db:"eligibility" json:"eligibility,omitempty"`
	Active        bool      `db:"active" json:"active"`
	Notes         string    `db:"notes" json:"notes,omitempty"`
	entity.BaseEntity
}

type PaginatedStudentEntity = entity.Pagination[Student]
