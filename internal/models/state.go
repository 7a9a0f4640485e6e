package models

// Settings represents application-wide settings stored with the habit data
type Settings struct {
	CurrentYear          int   `json:"currentYear"`
	NotificationsEnabled *bool `json:"notificationsEnabled,omitempty"`
}

// NotificationsOn reports whether notifications are enabled. Unset means off.
func (s Settings) NotificationsOn() bool {
	return s.NotificationsEnabled != nil && *s.NotificationsEnabled
}

// AppState is the persistence record: the whole application state as one unit
type AppState struct {
	Habits   []Habit    `json:"habits"`
	Logs     []LogEntry `json:"logs"`
	Settings Settings   `json:"settings"`
}

// EmptyState returns the state used when nothing has been persisted yet.
func EmptyState(currentYear int) AppState {
	return AppState{
		Habits:   []Habit{},
		Logs:     []LogEntry{},
		Settings: Settings{CurrentYear: currentYear},
	}
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	out := AppState{
		Habits:   make([]Habit, len(s.Habits)),
		Logs:     make([]LogEntry, len(s.Logs)),
		Settings: s.Settings,
	}
	copy(out.Logs, s.Logs)
	for i, h := range s.Habits {
		if h.Reminder != nil {
			r := *h.Reminder
			h.Reminder = &r
		}
		out.Habits[i] = h
	}
	if s.Settings.NotificationsEnabled != nil {
		v := *s.Settings.NotificationsEnabled
		out.Settings.NotificationsEnabled = &v
	}
	return out
}
