package models

// LogEntry records whether a habit was completed on a given day.
// A log holds at most one entry per (HabitID, Date).
type LogEntry struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // YYYY-MM-DD, calendar-local
	Completed bool   `json:"completed"`
}
