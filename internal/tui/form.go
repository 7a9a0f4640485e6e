package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitgrid/internal/constants"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/utils"
)

// NewHabitForm creates the form for adding a habit
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	if fm.Color == "" {
		fm.Color = constants.DefaultColor
	}

	colors := make([]huh.Option[string], len(constants.Palette))
	for i, c := range constants.Palette {
		colors[i] = huh.NewOption(constants.PaletteNames[i], c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(colors...).
				Value(&fm.Color),
			huh.NewConfirm().
				Title("Mandatory").
				Description("Mandatory habits decide whether a day counts as done").
				Value(&fm.Mandatory),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Description("Leave empty to track from the beginning").
				Value(&fm.StartDate).
				Validate(func(s string) error {
					if s != "" && !utils.ValidateDateFormat(s) {
						return errors.New("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Description("Leave empty for no reminder").
				Value(&fm.ReminderTime).
				Validate(func(s string) error {
					if s != "" && !utils.ValidateTimeFormat(s) {
						return errors.New("invalid time format, use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// Input converts the form into a create payload.
func (fm *HabitFormModel) Input() models.HabitInput {
	in := models.HabitInput{
		Name:      strings.TrimSpace(fm.Name),
		Color:     fm.Color,
		Mandatory: fm.Mandatory,
		StartDate: strings.TrimSpace(fm.StartDate),
	}
	if t := strings.TrimSpace(fm.ReminderTime); t != "" {
		in.Reminder = &models.Reminder{Enabled: true, Time: t}
	}
	return in
}

func newConfirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(value),
		),
	).WithTheme(huh.ThemeDracula())
}
