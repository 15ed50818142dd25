package dtr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
)

func TestExtract_StandardSheet(t *testing.T) {
	text := "Employee ID: EMP-042\nName: Juan Dela Cruz\nTime In: 8:00am\nTime Out: 5:00pm\n01/15/2024"

	res, err := Extract(text, "")
	require.NoError(t, err)

	assert.Equal(t, FormatStandard, res.Format)
	assert.Equal(t, "EMP-042", res.Employee.EmployeeID)
	assert.Equal(t, "Juan Dela Cruz", res.Employee.Name)
	assert.Equal(t, []string{"01/15/2024"}, res.Dates)
	assert.Equal(t, []string{"8:00am"}, res.Times.TimeIn)
	assert.Equal(t, []string{"5:00pm"}, res.Times.TimeOut)
	assert.Equal(t, float32(1), res.Confidence)
	assert.False(t, res.IsNewFormat)
}

func TestExtract_UnrecognizableText(t *testing.T) {
	res, err := Extract("asdf qwer 12345", "")
	require.NoError(t, err)

	assert.Equal(t, FormatUnknown, res.Format)
	assert.Empty(t, res.Employee.EmployeeID)
	assert.Empty(t, res.Employee.Name)
	assert.Empty(t, res.Dates)
	assert.Empty(t, res.Times.TimeIn)
	assert.Empty(t, res.Times.TimeOut)
	assert.Equal(t, float32(0), res.Confidence)
	assert.True(t, res.IsNewFormat)
}

func TestExtract_BiometricSingleLinePair(t *testing.T) {
	res, err := Extract("Biometric Log\n8:01am 5:03pm", "")
	require.NoError(t, err)

	assert.Equal(t, FormatBiometric, res.Format)
	assert.Equal(t, []string{"8:01am"}, res.Times.TimeIn)
	assert.Equal(t, []string{"5:03pm"}, res.Times.TimeOut)
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		_, err := Extract(text, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrInvalidInput))
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text := "Employee No. 77\nClock In 8:15 Clock Out 17:45\n2024-02-01\n2024-02-01"

	first, err := Extract(text, "acme")
	require.NoError(t, err)
	second, err := Extract(text, "acme")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_CompanyIDDoesNotAffectResult(t *testing.T) {
	text := "Time In 9:00am\nTime Out 6:00pm"

	plain, err := Extract(text, "")
	require.NoError(t, err)
	withCompany, err := Extract(text, "b7a9e0c4-4a7c-4df5-9f5e-0d7a4f8b1c22")
	require.NoError(t, err)

	assert.Equal(t, plain, withCompany)
}

// Confidence is the count of satisfied presence checks over three, so only
// four values are possible, and the new-format flag is tied to the 0.6 cut.
func TestExtract_ConfidenceLevels(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float32
	}{
		{"nothing", "garbled noise", 0},
		{"employee only", "Employee ID: EMP-001", float32(1) / 3},
		{"employee and date", "Employee ID: EMP-001\n01/02/2024", float32(2) / 3},
		{"all three", "Employee ID: EMP-001\n01/02/2024\nTime In 8:00am\nTime Out 5:00pm", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Extract(tc.text, "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Confidence)
			assert.Equal(t, res.Confidence < NewFormatThreshold, res.IsNewFormat)
			assert.Contains(t, []float32{0, float32(1) / 3, float32(2) / 3, 1}, res.Confidence)
		})
	}
}

// The threshold splits the four possible scores between 1/3 and 2/3.
func TestExtract_NewFormatFlagBoundary(t *testing.T) {
	low, err := Extract("Employee ID: EMP-001", "")
	require.NoError(t, err)
	assert.Equal(t, float32(1)/3, low.Confidence)
	assert.True(t, low.IsNewFormat)

	high, err := Extract("Employee ID: EMP-001\n01/02/2024", "")
	require.NoError(t, err)
	assert.Equal(t, float32(2)/3, high.Confidence)
	assert.False(t, high.IsNewFormat)
}
