package payroll

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The extractor keeps time and date tokens verbatim; parsing them into
// numbers happens here, where a failed parse just skips the day instead of
// failing the run.

var reClock = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?\s*(am|pm)?$`)

// ParseClock converts a raw token ("8:00am", "08:15", "17:45", "8:59:30")
// to minutes from midnight. ok is false for tokens that are not a valid
// clock reading.
func ParseClock(tok string) (int, bool) {
	m := reClock.FindStringSubmatch(strings.ToLower(strings.TrimSpace(tok)))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if mm > 59 {
		return 0, false
	}

	switch m[3] {
	case "am":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h > 23 {
			return 0, false
		}
	}
	return h*60 + mm, true
}

// dateLayouts cover the two triad shapes the extractor accepts. Month-first
// is assumed for the day-month-year shape, matching the sheets in use.
var dateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"2006-1-2",
	"2006/1/2",
	"1/2/06",
	"1-2-06",
}

// ParseDate converts a raw date token to a UTC date. ok is false for
// tokens that fit no known layout (including syntactic matches like
// "40/13/9999" that are not calendar dates).
func ParseDate(tok string) (time.Time, bool) {
	tok = strings.TrimSpace(tok)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, tok, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
