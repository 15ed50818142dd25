package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateish  = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)
	reTimeish  = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	reLabelish = regexp.MustCompile(`employee|name|time\s*in|time\s*out|clock|arrival|departure|biometric`)
)

func hasDatePattern(s string) bool  { return reDateish.MatchString(s) }
func hasTimePattern(s string) bool  { return reTimeish.MatchString(s) }
func hasLabelPattern(s string) bool { return reLabelish.MatchString(s) }

// naive heuristic confidence based on decoded text characteristics:
// boost if we see common timesheet artifacts (date-ish, time-ish,
// label-ish tokens) and enough content to be a real sheet.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if hasDatePattern(txtL) {
		score += 0.2
	}
	if hasTimePattern(txtL) {
		score += 0.2
	}
	if hasLabelPattern(txtL) {
		score += 0.2
	}
	if len(txt) > 80 { // enough content
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
