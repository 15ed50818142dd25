package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an audit trail row: who did what to which record.
type ActivityLog struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	Actor     string     `json:"actor"` // "system" for workflow-originated entries
	Action    string     `json:"action"`
	RecordID  *uuid.UUID `json:"record_id,omitempty"`
	Detail    string     `json:"detail,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
