package constants

// DTRStatus is the canonical status for rows in dtr_entries.
type DTRStatus string

// Stable values (store these exact strings in DB).
const (
	DTRStatusPending  DTRStatus = "PENDING"  // submitted, awaiting approval
	DTRStatusApproved DTRStatus = "APPROVED" // counted for payroll
	DTRStatusRejected DTRStatus = "REJECTED" // terminal, excluded from payroll
)
