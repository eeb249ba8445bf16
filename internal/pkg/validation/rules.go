package validation

import (
	"regexp"
	"time"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Roll number pattern - 2 to 20 uppercase letters and digits
	RollNoPattern = `^[A-Z0-9]{2,20}$`

	// Password min length
	PasswordMinLength = 8

	// Leave reason min length
	ReasonMinLength = 10

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	RollNo *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	RollNo: regexp.MustCompile(RollNoPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// Numeric validation
type NumericValidation struct {
	Value int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != 0 && v.Value < v.Min {
		return false
	}

	if v.Max != 0 && v.Value > v.Max {
		return false
	}

	return true
}

// ValidateDateRange checks an inclusive from/to date range. When
// requireFuture is set, from must not lie before today (dates are
// compared at day granularity). Returns an empty string when valid,
// otherwise the caller-facing message.
func ValidateDateRange(from, to time.Time, requireFuture bool) string {
	if from.IsZero() || to.IsZero() {
		return "Start and end dates are required"
	}
	if from.After(to) {
		return "Start date cannot be after end date"
	}
	if requireFuture {
		today := truncateToDay(time.Now())
		if truncateToDay(from).Before(today) {
			return "Start date cannot be in the past"
		}
	}
	return ""
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidatePasswordStrength checks the shared password rule: minimum
// length with at least one letter and one digit. Returns an empty
// string when valid, otherwise the caller-facing message.
func ValidatePasswordStrength(password string) string {
	if len(password) < PasswordMinLength {
		return "Password must be at least 8 characters long"
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "Password must contain at least one letter and one digit"
	}
	return ""
}

// ValidateReason checks the leave reason length rule. Returns an empty
// string when valid, otherwise the caller-facing message.
func ValidateReason(reason string) string {
	if len(reason) < ReasonMinLength {
		return "Reason must be at least 10 characters long"
	}
	return ""
}
