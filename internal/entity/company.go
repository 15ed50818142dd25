package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a client company whose employees submit DTRs.
type Company struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Address          *string   `json:"address,omitempty"`
	// WorkdayStart is the scheduled time-in in minutes from midnight.
	WorkdayStart     int       `json:"workday_start"`
	ScheduledMinutes int       `json:"scheduled_minutes"`
	GraceMinutes     int       `json:"grace_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
