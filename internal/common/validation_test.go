package common

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorCollectsErrors(t *testing.T) {
	v := NewValidator().
		Field("name", "", Required).
		Field("company_id", "not-a-uuid", UUID)

	require.True(t, v.HasErrors())
	assert.Len(t, v.Errors(), 2)

	err := v.Error()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestValidatorCleanInput(t *testing.T) {
	v := NewValidator().
		Field("name", "Acme Manpower", Required, MaxLength(200)).
		Field("employee_code", "EMP-042", Required, EmployeeCode)

	assert.False(t, v.HasErrors())
	assert.NoError(t, v.Error())
}

func TestMaxLength(t *testing.T) {
	rule := MaxLength(5)

	assert.Nil(t, rule("name", "short"))
	assert.NotNil(t, rule("name", "too long for five"))

	// Runes, not bytes.
	assert.Nil(t, rule("name", strings.Repeat("ñ", 5)))

	// Nil pointers and non-strings pass through.
	assert.Nil(t, rule("name", (*string)(nil)))
	assert.Nil(t, rule("rate", 42))
}

func TestEmployeeCodeRule(t *testing.T) {
	assert.Nil(t, EmployeeCode("code", "EMP-042"))
	assert.Nil(t, EmployeeCode("code", "E1234"))
	assert.NotNil(t, EmployeeCode("code", "042"))
	assert.NotNil(t, EmployeeCode("code", "EMP 042"))
}
