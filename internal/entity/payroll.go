package entity

import (
	"time"

	"github.com/google/uuid"
)

// PayrollRecord is the computed pay for one employee over one period.
type PayrollRecord struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"company_id"`
	EmployeeID uuid.UUID `json:"employee_id"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	DaysWorked      int `json:"days_worked"`
	WorkedMinutes   int `json:"worked_minutes"`
	LateMinutes     int `json:"late_minutes"`
	OvertimeMinutes int `json:"overtime_minutes"`

	GrossPay   float64 `json:"gross_pay"`
	Deductions float64 `json:"deductions"`
	NetPay     float64 `json:"net_pay"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// DTO fields resolved on read for display and export.
	EmployeeCode string `json:"employee_code,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
}
