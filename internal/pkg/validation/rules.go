package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// National identity number: 9 digits + V/X, or 12 digits
	NICPattern = `^(\d{9}[vVxX]|\d{12})$`

	// Local phone number: leading zero + 9 digits
	PhonePattern = `^0\d{9}$`

	// Time slot range in "HH:mm-HH:mm" form
	SlotPattern = `^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`

	// Clock time in "HH:mm" form
	ClockPattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	NIC   *regexp.Regexp
	Phone *regexp.Regexp
	Slot  *regexp.Regexp
	Clock *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	NIC:   regexp.MustCompile(NICPattern),
	Phone: regexp.MustCompile(PhonePattern),
	Slot:  regexp.MustCompile(SlotPattern),
	Clock: regexp.MustCompile(ClockPattern),
}

// StringValidation validates a string value against length and pattern rules
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

// IsValidSlot reports whether s is a well-formed "HH:mm-HH:mm" range.
func IsValidSlot(s string) bool {
	return CompiledPatterns.Slot.MatchString(s)
}

// IsValidClock reports whether s is a well-formed "HH:mm" time.
func IsValidClock(s string) bool {
	return CompiledPatterns.Clock.MatchString(s)
}
