package dto

// CreateStudentRequest for adding a student to the caseload.
type CreateStudentRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	GradeLevel    string `json:"grade_level"`
	School        string `json:"school"`
	District      string `json:"district"`
	HearingLeft   string `json:"hearing_left"`
	HearingRight  string `json:"hearing_right"`
	Amplification string `json:"amplification"`
	Eligibility   string `json:"eligibility"`
	Notes         string `json:"notes"`
}

// UpdateStudentRequest mirrors the create shape plus the active flag.
type UpdateStudentRequest struct {
	CreateStudentRequest
	Active bool `json:"active"`
}
