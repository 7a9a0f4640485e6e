package utils

import (
	"testing"
	"time"
)

func TestValidateDateFormat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-01-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-1-1", false},
		{"2024/01/01", false},
		{"", false},
		{"2024-13-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidateDateFormat(tt.input); got != tt.want {
				t.Errorf("ValidateDateFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"08:00", true},
		{"23:59", true},
		{"24:00", false},
		{"8:00", false},
		{"08:60", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidateTimeFormat(tt.input); got != tt.want {
				t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadLocation(t *testing.T) {
	for _, tz := range []string{"", "Local"} {
		loc, err := LoadLocation(tz)
		if err != nil {
			t.Fatalf("LoadLocation(%q) error: %v", tz, err)
		}
		if loc != time.Local {
			t.Errorf("LoadLocation(%q) = %v, want Local", tz, loc)
		}
	}

	if _, err := LoadLocation("UTC"); err != nil {
		t.Errorf("LoadLocation(UTC) error: %v", err)
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("expected invalid timezone to fail validation")
	}
}

func TestYearPrefix(t *testing.T) {
	if got := YearPrefix(987); got != "0987-" {
		t.Errorf("YearPrefix(987) = %q", got)
	}
}
