package entity

import (
	"time"

	"github.com/google/uuid"
)

// DTREntry represents one submitted daily time record, either typed in or
// produced by the capture workflow from a scanned sheet.
type DTREntry struct {
	ID         uuid.UUID  `json:"id"`
	CompanyID  uuid.UUID  `json:"company_id"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"` // nil until matched to an employee record

	// Raw extraction output, kept verbatim for review.
	EmployeeCode string   `json:"employee_code,omitempty"`
	EmployeeName string   `json:"employee_name,omitempty"`
	Dates        []string `json:"dates"`
	TimeIn       []string `json:"time_in"`
	TimeOut      []string `json:"time_out"`

	DetectedFormat string  `json:"detected_format"`
	Confidence     float32 `json:"confidence"`
	NeedsReview    bool    `json:"needs_review"`

	Status          string     `json:"status"` // constants.DTRStatus values
	SourcePath      *string    `json:"source_path,omitempty"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
