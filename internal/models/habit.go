package models

// Reminder configures a daily notification for a habit
type Reminder struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time" validate:"omitempty,hhmm"` // HH:MM
}

// Habit represents a recurring practice to track
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Mandatory bool      `json:"mandatory"`
	CreatedAt string    `json:"createdAt"`           // RFC 3339
	StartDate string    `json:"startDate,omitempty"` // YYYY-MM-DD, empty when unset
	Reminder  *Reminder `json:"reminder,omitempty"`
}

// ActiveOn reports whether the habit's activation window includes day.
// Habits without a start date are always active.
func (h Habit) ActiveOn(day string) bool {
	return h.StartDate == "" || h.StartDate <= day
}

// HabitInput is the payload used to create a habit
type HabitInput struct {
	Name      string    `validate:"required,notblank"`
	Color     string    `validate:"omitempty,hexcolor"`
	Mandatory bool
	StartDate string    `validate:"omitempty,ymd"`
	Reminder  *Reminder `validate:"omitempty"`
}

// HabitPatch holds a partial habit update. Nil fields are left unchanged.
type HabitPatch struct {
	Name      *string   `validate:"omitempty,notblank"`
	Color     *string   `validate:"omitempty,hexcolor"`
	Mandatory *bool
	StartDate *string   `validate:"omitempty,ymdorempty"` // "" clears the start date
	Reminder  *Reminder `validate:"omitempty"`
	// ClearReminder removes the reminder; it wins over Reminder
	ClearReminder bool
}

// Apply merges the patch into h and returns the result.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Mandatory != nil {
		h.Mandatory = *p.Mandatory
	}
	if p.StartDate != nil {
		h.StartDate = *p.StartDate
	}
	if p.Reminder != nil {
		r := *p.Reminder
		h.Reminder = &r
	}
	if p.ClearReminder {
		h.Reminder = nil
	}
	return h
}

// IsEmpty reports whether the patch changes nothing.
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.Mandatory == nil &&
		p.StartDate == nil && p.Reminder == nil && !p.ClearReminder
}
