package models

// DayStatus is the derived completion summary for one calendar date.
// It is recomputed from habits and logs and never persisted.
type DayStatus struct {
	Date               string
	MandatoryCompleted int
	MandatoryTotal     int
	OptionalCompleted  int
	OptionalTotal      int
	// CompletedColors follows log order for the date; duplicates are kept
	CompletedColors []string
	// IsFiltered is set when the status was computed for a habit subset
	IsFiltered bool
}

// Completed returns the number of habits completed on the day.
func (d DayStatus) Completed() int {
	return d.MandatoryCompleted + d.OptionalCompleted
}

// Total returns the number of habits the day is measured against.
func (d DayStatus) Total() int {
	return d.MandatoryTotal + d.OptionalTotal
}
