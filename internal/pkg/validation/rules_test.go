package validation

import "testing"

func TestIsValidSlot(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"09:00-09:30", true},
		{"00:00-23:59", true},
		{"9:00-10:00", false},
		{"09:00", false},
		{"09:00-24:00", false},
		{"09:60-10:00", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidSlot(tt.input); got != tt.want {
			t.Errorf("IsValidSlot(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"12:60", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidClock(tt.input); got != tt.want {
			t.Errorf("IsValidClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNICPattern(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"991234567V", true},
		{"991234567v", true},
		{"991234567X", true},
		{"200012345678", true},
		{"991234567", false},
		{"991234567Z", false},
		{"20001234567", false},
	}

	for _, tt := range tests {
		if got := CompiledPatterns.NIC.MatchString(tt.input); got != tt.want {
			t.Errorf("NIC %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPhonePattern(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0771234567", true},
		{"0112345678", true},
		{"771234567", false},
		{"07712345678", false},
		{"07712345a7", false},
	}

	for _, tt := range tests {
		if got := CompiledPatterns.Phone.MatchString(tt.input); got != tt.want {
			t.Errorf("Phone %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStringValidation(t *testing.T) {
	if NewStringValidation("").Validate() {
		t.Error("required empty string should fail")
	}
	if !NewStringValidation("").WithRequired(false).Validate() {
		t.Error("optional empty string should pass")
	}
	if NewStringValidation("ab").WithMinLength(3).Validate() {
		t.Error("too-short string should fail")
	}
	if NewStringValidation("abcd").WithMaxLength(3).Validate() {
		t.Error("too-long string should fail")
	}
	if !NewStringValidation("09:00-10:00").WithPattern(CompiledPatterns.Slot).Validate() {
		t.Error("valid slot should pass pattern check")
	}
}
