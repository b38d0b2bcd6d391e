package entity

import (
	"time"

	"github.com/google/uuid"

	"caseload-api/core/entity"
)

// Sound is one of the six Ling sounds spanning the speech frequency range.
type Sound string

const (
	SoundM  Sound = "m"
	SoundOO Sound = "oo"
	SoundAH Sound = "ah"
	SoundEE Sound = "ee"
	SoundSH Sound = "sh"
	SoundS  Sound = "s"
)

// AllSounds is the fixed evaluation order of the six sounds.
var AllSounds = [6]Sound{SoundM, SoundOO, SoundAH, SoundEE, SoundSH, SoundS}

// Response is how the student responded to one presentation of a sound.
type Response string

const (
	ResponseIdentified Response = "identified"
	ResponseDetected   Response = "detected"
	ResponseIncorrect  Response = "incorrect"
	ResponseNoResponse Response = "no_response"
)

// SoundStatus is a sound's best response across a session, or not_tested.
type SoundStatus string

const (
	StatusIdentified SoundStatus = "identified"
	StatusDetected   SoundStatus = "detected"
	StatusIncorrect  SoundStatus = "incorrect"
	StatusNoResponse SoundStatus = "no_response"
	StatusNotTested  SoundStatus = "not_tested"
)

// PromptLevel is how much assistance the student needed.
type PromptLevel string

const (
	PromptIndependent PromptLevel = "independent"
	PromptRepetition  PromptLevel = "repetition"
	PromptClosedSet   PromptLevel = "closed_set"
)

// Ling6Session is one listening check conducted with a student.
type Ling6Session struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	StudentID   uuid.UUID `db:"student_id" json:"student_id"`
	ConductedAt time.Time `db:"conducted_at" json:"conducted_at"`
	Environment string    `db:"environment" json:"environment,omitempty"` // quiet, noise...
	DeviceWorn  string    `db:"device_worn" json:"device_worn,omitempty"`
	Distance    string    `db:"distance" json:"distance,omitempty"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	entity.BaseEntity
}

// Ling6Trial is one presentation of one sound within a session.
type Ling6Trial struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	SessionID   uuid.UUID   `db:"session_id" json:"session_id"`
	Sound       Sound       `db:"sound" json:"sound"`
	Response    Response    `db:"response" json:"response"`
	PromptLevel PromptLevel `db:"prompt_level" json:"prompt_level,omitempty"`
	Position    int         `db:"position" json:"position"`
}

// SoundResult is the per-sound outcome in a summary.
type SoundResult struct {
	Sound  Sound       `json:"sound"`
	Status SoundStatus `json:"status"`
	Trials int         `json:"trials"`
}

// Summary aggregates a session's trials per sound.
type Summary struct {
	Sounds          []SoundResult `json:"sounds"`
	TestedCount     int           `json:"tested_count"`
	DetectedCount   int           `json:"detected_count"`
	IdentifiedCount int           `json:"identified_count"`
	DetectedPct     int           `json:"detected_pct"`
	IdentifiedPct   int           `json:"identified_pct"`
}
