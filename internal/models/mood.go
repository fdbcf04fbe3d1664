package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/julianstephens/moodlog/internal/constants"
	apperrors "github.com/julianstephens/moodlog/internal/errors"
)

// TimeCategory is the coarse part of the day an entry was recorded in
type TimeCategory string

const (
	Morning   TimeCategory = "Morning"
	Afternoon TimeCategory = "Afternoon"
	Evening   TimeCategory = "Evening"
	Night     TimeCategory = "Night"
)

// TimeCategoryForHour buckets an hour of the day. Boundaries are lower-inclusive.
func TimeCategoryForHour(hour int) TimeCategory {
	switch {
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	case hour < 21:
		return Evening
	default:
		return Night
	}
}

func (c TimeCategory) IsValid() bool {
	switch c {
	case Morning, Afternoon, Evening, Night:
		return true
	}
	return false
}

type MoodType struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// Catalog is the fixed set of moods a user can record, in display order.
var Catalog = []MoodType{
	{Emoji: "😄", Label: "Happy"},
	{Emoji: "😢", Label: "Sad"},
	{Emoji: "😠", Label: "Angry"},
	{Emoji: "😴", Label: "Tired"},
	{Emoji: "😍", Label: "Loved"},
	{Emoji: "😐", Label: "Neutral"},
}

// LookupMood finds a catalog mood by label, ignoring case
func LookupMood(label string) (MoodType, bool) {
	for _, m := range Catalog {
		if strings.EqualFold(m.Label, strings.TrimSpace(label)) {
			return m, true
		}
	}
	return MoodType{}, false
}

// EmojiFor returns the catalog emoji for a label, or "" when the label is unknown
func EmojiFor(label string) string {
	if m, ok := LookupMood(label); ok {
		return m.Emoji
	}
	return ""
}

type catalogSource []MoodType

func (c catalogSource) String(i int) string { return c[i].Label }
func (c catalogSource) Len() int            { return len(c) }

// ResolveMood resolves user input to a catalog mood. Exact (case-insensitive)
// matches win; otherwise the best fuzzy match is used.
func ResolveMood(query string) (MoodType, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return MoodType{}, fmt.Errorf("%w: empty mood name", apperrors.ErrUnknownMood)
	}
	if m, ok := LookupMood(query); ok {
		return m, nil
	}
	for _, m := range Catalog {
		if m.Emoji == query {
			return m, nil
		}
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), lowerCatalog())
	if len(matches) == 0 {
		return MoodType{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownMood, query)
	}
	return Catalog[matches[0].Index], nil
}

func lowerCatalog() catalogSource {
	lowered := make(catalogSource, len(Catalog))
	for i, m := range Catalog {
		lowered[i] = MoodType{Emoji: m.Emoji, Label: strings.ToLower(m.Label)}
	}
	return lowered
}

// MoodEntry is a single recorded observation. Entries are never mutated once created.
type MoodEntry struct {
	Emoji        string       `json:"emoji"`
	Label        string       `json:"label"`
	Hour         int          `json:"hour"`
	TimeCategory TimeCategory `json:"timeCategory"`
	Date         string       `json:"date"`
}

// NewMoodEntry builds an entry for a mood selected at the given instant.
// The hour is taken in loc; the date follows basis.
func NewMoodEntry(selected time.Time, loc *time.Location, basis constants.DateBasis, mood MoodType) MoodEntry {
	if loc == nil {
		loc = time.Local
	}
	local := selected.In(loc)

	date := selected.UTC().Format(constants.DateFormat)
	if basis == constants.DateBasisLocal {
		date = local.Format(constants.DateFormat)
	}

	return MoodEntry{
		Emoji:        mood.Emoji,
		Label:        mood.Label,
		Hour:         local.Hour(),
		TimeCategory: TimeCategoryForHour(local.Hour()),
		Date:         date,
	}
}

func (e MoodEntry) Validate(partition string) error {
	if strings.TrimSpace(e.Label) == "" {
		return fmt.Errorf("entry in %s has an empty label", partition)
	}
	if e.Hour < 0 || e.Hour > 23 {
		return fmt.Errorf("entry %s in %s has hour %d outside 0-23", e.Label, partition, e.Hour)
	}
	if !e.TimeCategory.IsValid() {
		return fmt.Errorf("entry %s in %s has unknown time category %q", e.Label, partition, e.TimeCategory)
	}
	if e.Date != partition {
		return fmt.Errorf("entry %s dated %s is filed under %s", e.Label, e.Date, partition)
	}
	return nil
}
