package dto

// CreateServiceLogRequest records delivered minutes for a student.
type CreateServiceLogRequest struct {
	StudentID      string `json:"student_id" validate:"required,uuid"`
	ServiceDate    string `json:"service_date" validate:"required"` // YYYY-MM-DD
	DirectMinutes  int    `json:"direct_minutes" validate:"min=0"`
	ConsultMinutes int    `json:"consult_minutes" validate:"min=0"`
	Setting        string `json:"setting" validate:"omitempty,oneof=in_person telepractice hybrid not_applicable"`
	EventID        string `json:"event_id" validate:"omitempty,uuid"`
	Note           string `json:"note"`
}

// UpdateServiceLogRequest edits an existing entry.
type UpdateServiceLogRequest struct {
	ServiceDate    string `json:"service_date" validate:"required"` // YYYY-MM-DD
	DirectMinutes  int    `json:"direct_minutes" validate:"min=0"`
	ConsultMinutes int    `json:"consult_minutes" validate:"min=0"`
	Setting        string `json:"setting" validate:"omitempty,oneof=in_person telepractice hybrid not_applicable"`
	EventID        string `json:"event_id" validate:"omitempty,uuid"`
	Note           string `json:"note"`
}
