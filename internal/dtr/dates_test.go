package dtr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDates_OrderAndDuplicates(t *testing.T) {
	lines := []string{
		"01/15/2024 then 01/16/2024",
		"noise",
		"01/15/2024",
	}

	got := extractDates(lines)
	assert.Equal(t, []string{"01/15/2024", "01/16/2024", "01/15/2024"}, got)
}

func TestExtractDates_AcceptedShapes(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"1/2/24", []string{"1/2/24"}},
		{"01-02-2024", []string{"01-02-2024"}},
		{"2024-01-15", []string{"2024-01-15"}},
		{"2024/1/5", []string{"2024/1/5"}},
		// No calendar validation: syntactic matches pass through.
		{"40/13/9999", []string{"40/13/9999"}},
		// A date embedded in OCR noise is still found.
		{"x01/15/2024", []string{"01/15/2024"}},
		// Not date-shaped.
		{"12345", []string{}},
		{"1/2", []string{}},
		{"8:30am", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, extractDates([]string{tc.line}))
		})
	}
}
