package constants

// Payroll defaults applied when a company record leaves them unset.
const (
	// DefaultScheduledMinutes is a standard 8-hour working day.
	DefaultScheduledMinutes = 8 * 60

	// DefaultGraceMinutes is the late-arrival allowance before deductions apply.
	DefaultGraceMinutes = 10

	// DefaultWorkdayStart is the scheduled time-in, minutes from midnight (08:00).
	DefaultWorkdayStart = 8 * 60
)
