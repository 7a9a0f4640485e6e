package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitgrid/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDate parses a YYYY-MM-DD string. The result is midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidateDateFormat checks if the string is a real calendar date in YYYY-MM-DD form.
func ValidateDateFormat(dateStr string) bool {
	t, err := ParseDate(dateStr)
	// time.Parse accepts some non-padded inputs; require the canonical form
	return err == nil && t.Format(constants.DateFormat) == dateStr
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	t, err := ParseTime(timeStr)
	return err == nil && t.Format(constants.TimeFormat) == timeStr
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// YearPrefix returns the "YYYY-" prefix shared by every date in year.
func YearPrefix(year int) string {
	return fmt.Sprintf("%04d-", year)
}
