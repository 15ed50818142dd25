package dtr

import (
	"regexp"
	"strings"
)

// Times holds raw time-in/time-out tokens in discovery order. Lengths need
// not match; values stay textual ("8:30am"), parsing belongs to payroll.
type Times struct {
	TimeIn  []string `json:"time_in"`
	TimeOut []string `json:"time_out"`
}

var (
	reTimeInLabel  = regexp.MustCompile(`(?i)time\s*in`)
	reTimeOutLabel = regexp.MustCompile(`(?i)time\s*out`)

	// 12-hour display token, optional meridiem, optional leading zero.
	reClockToken = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`)

	// Biometric exports often carry seconds.
	reClockTokenSec = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?\b`)
)

// extractTimes scans lines individually; the heuristic per line depends on
// the detected layout. The generic path is strictly best-effort.
func extractTimes(lines []string, format Format) Times {
	times := Times{TimeIn: []string{}, TimeOut: []string{}}

	switch format {
	case FormatStandard:
		for _, line := range lines {
			// Not mutually exclusive: a line matching both labels
			// contributes to both lists.
			if reTimeInLabel.MatchString(line) {
				if tok := reClockToken.FindString(line); tok != "" {
					times.TimeIn = append(times.TimeIn, tok)
				}
			}
			if reTimeOutLabel.MatchString(line) {
				if tok := reClockToken.FindString(line); tok != "" {
					times.TimeOut = append(times.TimeOut, tok)
				}
			}
		}

	case FormatBiometric:
		for _, line := range lines {
			toks := reClockTokenSec.FindAllString(line, -1)
			if len(toks) >= 2 {
				times.TimeIn = append(times.TimeIn, toks[0])
				times.TimeOut = append(times.TimeOut, toks[1])
			}
		}

	default:
		for _, line := range lines {
			toks := reClockTokenSec.FindAllString(line, -1)
			switch {
			case len(toks) >= 2:
				times.TimeIn = append(times.TimeIn, toks[0])
				times.TimeOut = append(times.TimeOut, toks[len(toks)-1])
			case len(toks) == 1:
				// The in-check runs first, so a line carrying both context
				// words routes its lone token to time-in.
				low := strings.ToLower(line)
				if strings.Contains(low, "in") || strings.Contains(low, "arrival") {
					times.TimeIn = append(times.TimeIn, toks[0])
				} else if strings.Contains(low, "out") || strings.Contains(low, "departure") {
					times.TimeOut = append(times.TimeOut, toks[0])
				}
				// No context word: the token is dropped.
			}
		}
	}

	return times
}
