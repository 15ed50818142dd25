package dtr

import (
	"regexp"
	"strings"
)

// EmployeeInfo carries whatever identity the sheet yielded; either field
// may be empty when no match was found.
type EmployeeInfo struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Name       string `json:"name,omitempty"`
}

var (
	// "Employee", optional "ID"/"No"/"Number" qualifier, optional
	// punctuation, then a run of letters, digits and hyphens.
	reEmployeeID = regexp.MustCompile(`(?i)employee\s*(?:id|no\.?|number)?\s*[:#]?\s*([A-Za-z0-9-]+)`)

	// "Name", optional punctuation, then a run of letters, spaces and
	// periods. The buffer is space-joined, so a name wrapped across lines
	// stays in one run; the run stops at digits and punctuation on its own.
	reEmployeeName = regexp.MustCompile(`(?i)name\s*[:#]?\s*([A-Za-z. ]+)`)

	// In the space-joined buffer a captured name run swallows the next
	// sheet label when only spaces separate them ("Juan Dela Cruz Time
	// In"). The run is cut at the first label token so the value ends
	// where the sheet's next field begins.
	reNameTrailingLabel = regexp.MustCompile(`(?i)\s*\b(?:employee|name|date|time\s*in|time\s*out|clock\s*in|clock\s*out|arrival|departure|biometric)\b.*$`)
)

// extractEmployeeInfo joins all lines with a single space, so a label and
// its value may span what were originally separate lines, and keeps the
// first match for each field independently. No attempt is made to reject
// label fragments captured as values; noisy OCR text can yield garbage
// here and the confidence score is what flags such sheets for review.
func extractEmployeeInfo(lines []string) EmployeeInfo {
	buf := strings.Join(lines, " ")

	var info EmployeeInfo
	if m := reEmployeeID.FindStringSubmatch(buf); m != nil {
		info.EmployeeID = strings.TrimSpace(m[1])
	}
	if m := reEmployeeName.FindStringSubmatch(buf); m != nil {
		name := reNameTrailingLabel.ReplaceAllString(m[1], "")
		info.Name = strings.TrimSpace(name)
	}
	return info
}
