package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlog/internal/constants"
)

// NewTimeForm creates the form for picking the date and time an entry is
// recorded for
func NewTimeForm(fm *TimeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewResetForm creates the confirmation shown before mood data is cleared
func NewResetForm(fm *ResetFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Confirm Reset").
				Description("Are you sure you want to clear all mood data?").
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirm),
		),
	).WithTheme(huh.ThemeDracula())
}
