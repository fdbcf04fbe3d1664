package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/moodlog/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ResolveSelectedTime turns the optional --date and --at flags into the
// instant an entry is recorded for. at accepts HH:MM (combined with date,
// or today in loc) or a full RFC3339 timestamp, which ignores date.
func ResolveSelectedTime(now time.Time, date, at string, loc *time.Location) (time.Time, error) {
	now = now.In(loc)
	at = strings.TrimSpace(at)
	date = strings.TrimSpace(date)

	if at != "" && strings.Contains(at, "T") {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", at, err)
		}
		return t.In(loc), nil
	}

	day := now
	if date != "" {
		d, err := ParseDateInLocation(date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
		}
		day = d
	}

	hour, minute, sec := now.Hour(), now.Minute(), now.Second()
	if at != "" {
		tod, err := time.Parse(constants.TimeFormat, at)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: %w", at, err)
		}
		hour, minute, sec = tod.Hour(), tod.Minute(), 0
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, sec, 0, loc), nil
}
