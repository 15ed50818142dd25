package dtr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Format
	}{
		{"standard labels", "Time In: 8:00\nTime Out: 17:00", FormatStandard},
		{"standard mixed case", "TIME IN 8:00 ... time out 17:00", FormatStandard},
		{"standard across lines", "time in\n8:00\nlunch\ntime out\n17:00", FormatStandard},
		{"timesheet", "Clock In 8:00 Clock Out 17:00", FormatTimesheet},
		{"attendance log", "Arrival 8:00 Departure 17:00", FormatAttendanceLog},
		{"biometric", "BIOMETRIC device export", FormatBiometric},
		{"unknown", "nothing recognizable here", FormatUnknown},
		{"out before in is not standard", "Time Out 17:00 then Time In 8:00 biometric", FormatBiometric},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFormat(tc.text, ""))
		})
	}
}

// A sheet carrying "time in ... time out" is standard no matter which other
// layout keywords also appear later in the text.
func TestDetectFormat_StandardWinsOverLaterKeywords(t *testing.T) {
	text := "Time In 8:00 Time Out 17:00\nclock in clock out\narrival departure\nbiometric"
	assert.Equal(t, FormatStandard, DetectFormat(text, ""))
}

// Precedence is positional, not specificity-based: with standard absent,
// timesheet beats attendance-log beats biometric.
func TestDetectFormat_PrecedenceIsPositional(t *testing.T) {
	text := "clock in 8:00 clock out 17:00\narrival departure\nbiometric"
	assert.Equal(t, FormatTimesheet, DetectFormat(text, ""))

	text = "arrival 8:00 departure 17:00\nbiometric"
	assert.Equal(t, FormatAttendanceLog, DetectFormat(text, ""))
}
