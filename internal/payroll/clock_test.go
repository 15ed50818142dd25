package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		tok    string
		want   int
		wantOK bool
	}{
		{"8:00am", 8 * 60, true},
		{"5:00pm", 17 * 60, true},
		{"12:00am", 0, true},
		{"12:30pm", 12*60 + 30, true},
		{"08:15", 8*60 + 15, true},
		{"17:45", 17*60 + 45, true},
		{"8:01:30", 8*60 + 1, true},     // seconds dropped
		{"  9:05 AM ", 9*60 + 5, true},  // whitespace and case
		{"23:59", 23*60 + 59, true},
		{"24:00", 0, false},
		{"13:00pm", 0, false},
		{"0:30am", 0, false},
		{"8:60", 0, false},
		{"800", 0, false},
		{"", 0, false},
		{"noon", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.tok, func(t *testing.T) {
			got, ok := ParseClock(tc.tok)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		tok    string
		want   time.Time
		wantOK bool
	}{
		{"01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"1-5-2024", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024/1/15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"12/31/24", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"40/13/9999", time.Time{}, false}, // extractor accepts it, calendar rejects it
		{"02/30/2024", time.Time{}, false},
		{"January 15", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.tok, func(t *testing.T) {
			got, ok := ParseDate(tc.tok)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.True(t, tc.want.Equal(got), "got %s", got)
			}
		})
	}
}
