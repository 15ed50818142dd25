package entity

import (
	"time"

	"github.com/google/uuid"
)

// Employee represents an employee record for data transfer between layers.
type Employee struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    uuid.UUID  `json:"company_id"`
	EmployeeCode string     `json:"employee_code"` // printed on DTR sheets, e.g. EMP-042
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Position     *string    `json:"position,omitempty"`
	DailyRate    float64    `json:"daily_rate"`
	Active       bool       `json:"active"`
	HiredAt      *time.Time `json:"hired_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName joins first and last name for display and matching.
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
