package dtr

import "regexp"

// Two separator-delimited numeric triads: day-month-year or year-month-day.
// Day/month order is ambiguous in the wild and deliberately not resolved;
// the raw token is kept verbatim. No anchoring, so a date embedded in OCR
// noise ("x01/15/2024") is still found.
var reDate = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{2,4}[-/]\d{1,2}[-/]\d{1,2}`)

// extractDates returns every date-shaped token in discovery order:
// top to bottom, left to right within a line. No deduplication and no
// calendar validation; "40/13/9999" is a syntactic match.
func extractDates(lines []string) []string {
	dates := []string{}
	for _, line := range lines {
		dates = append(dates, reDate.FindAllString(line, -1)...)
	}
	return dates
}
