package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDateRange(t *testing.T) {
	today := time.Now()
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	tests := []struct {
		name          string
		from, to      time.Time
		requireFuture bool
		wantMessage   string
	}{
		{"valid future range", tomorrow, tomorrow.AddDate(0, 0, 3), true, ""},
		{"single day range", tomorrow, tomorrow, true, ""},
		{"starting today is allowed", today, tomorrow, true, ""},
		{"missing dates", time.Time{}, tomorrow, true, "Start and end dates are required"},
		{"start after end", tomorrow.AddDate(0, 0, 3), tomorrow, true, "Start date cannot be after end date"},
		{"past start rejected when future required", yesterday, tomorrow, true, "Start date cannot be in the past"},
		{"past start allowed otherwise", yesterday, tomorrow, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, ValidateDateRange(tt.from, tt.to, tt.requireFuture))
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Equal(t, "", ValidatePasswordStrength("passw0rd"))
	assert.Equal(t, "Password must be at least 8 characters long", ValidatePasswordStrength("pw1"))
	assert.Equal(t, "Password must contain at least one letter and one digit", ValidatePasswordStrength("password"))
	assert.Equal(t, "Password must contain at least one letter and one digit", ValidatePasswordStrength("12345678"))
}

func TestValidateReason(t *testing.T) {
	assert.Equal(t, "", ValidateReason("family emergency at home"))
	assert.Equal(t, "Reason must be at least 10 characters long", ValidateReason("sick"))
}

func TestRollNoPattern(t *testing.T) {
	valid := []string{"CS2021001", "AB12", "2023MBA045"}
	for _, rollNo := range valid {
		assert.True(t, CompiledPatterns.RollNo.MatchString(rollNo), rollNo)
	}

	invalid := []string{"", "a", "cs2021001", "CS 2021", "ABCDEFGHIJKLMNOPQRSTU"}
	for _, rollNo := range invalid {
		assert.False(t, CompiledPatterns.RollNo.MatchString(rollNo), rollNo)
	}
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("CS").WithPattern(CompiledPatterns.RollNo).Validate())
	assert.False(t, NewStringValidation("").WithPattern(CompiledPatterns.RollNo).Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(5).Validate())
	assert.False(t, NewStringValidation("abc").WithMinLength(5).Validate())
	assert.False(t, NewStringValidation("abcdef").WithMaxLength(5).Validate())
}

func TestNumericValidation(t *testing.T) {
	assert.True(t, NewNumericValidation(4).WithMin(1).WithMax(8).Validate())
	assert.True(t, NewNumericValidation(8).WithMin(1).WithMax(8).Validate())
	assert.False(t, NewNumericValidation(0).WithMin(1).WithMax(8).Validate())
	assert.False(t, NewNumericValidation(9).WithMin(1).WithMax(8).Validate())
}
