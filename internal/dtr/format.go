package dtr

import "regexp"

// Format classifies which known DTR layout a document resembles.
type Format string

const (
	FormatStandard      Format = "standard"
	FormatTimesheet     Format = "timesheet"
	FormatAttendanceLog Format = "attendance-log"
	FormatBiometric     Format = "biometric"
	FormatUnknown       Format = "unknown"
)

type formatRule struct {
	pattern *regexp.Regexp
	format  Format
}

// formatRules are evaluated top to bottom over the whole text; the first
// hit wins even when a later rule's pattern is also present. Order is part
// of the contract: time extraction branches on the detected format.
var formatRules = []formatRule{
	{regexp.MustCompile(`(?is)time\s*in.*time\s*out`), FormatStandard},
	{regexp.MustCompile(`(?is)clock\s*in.*clock\s*out`), FormatTimesheet},
	{regexp.MustCompile(`(?is)arrival.*departure`), FormatAttendanceLog},
	{regexp.MustCompile(`(?i)biometric`), FormatBiometric},
}

// DetectFormat classifies raw recognized text into one layout category.
// companyID is reserved for per-company template lookup and has no effect
// on the result.
func DetectFormat(text string, companyID string) Format {
	for _, r := range formatRules {
		if r.pattern.MatchString(text) {
			return r.format
		}
	}
	return FormatUnknown
}
