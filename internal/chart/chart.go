package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
)

const (
	Title          = "Mood History Overview"
	EmptyText      = "No mood data yet"
	BreakdownTitle = "Breakdown"

	defaultBarWidth = 30
	barRune         = "█"
)

// Segment is one slice of the mood chart.
type Segment struct {
	Name    string
	Label   string
	Emoji   string
	Count   int
	Percent float64
	Color   string
}

// Build turns stats into chart segments in first-appearance order. Colours
// cycle through the palette by index; emoji come from catalog by label and
// are empty for labels the catalog does not know.
func Build(stats models.MoodStats, catalog []models.MoodType) []Segment {
	emojis := make(map[string]string, len(catalog))
	for _, m := range catalog {
		emojis[m.Label] = m.Emoji
	}

	total := stats.Total()
	items := stats.Items()
	segments := make([]Segment, 0, len(items))
	for i, item := range items {
		emoji := emojis[item.Label]
		seg := Segment{
			Name:  fmt.Sprintf("%s %s", emoji, item.Label),
			Label: item.Label,
			Emoji: emoji,
			Count: item.Count,
			Color: constants.ChartPalette[i%len(constants.ChartPalette)],
		}
		if total > 0 {
			seg.Percent = float64(item.Count) * 100 / float64(total)
		}
		segments = append(segments, seg)
	}
	return segments
}

// Line is the plain breakdown text for a segment, e.g. "😄 Happy: 3 times".
func (s Segment) Line() string {
	return fmt.Sprintf("%s: %d times", s.Name, s.Count)
}

// Render draws the breakdown: one coloured line per segment followed by a
// bar proportional to its share. width <= 0 uses a default bar width.
func Render(segments []Segment, width int) string {
	if len(segments) == 0 {
		return lipgloss.NewStyle().Faint(true).Render(EmptyText)
	}
	if width <= 0 {
		width = defaultBarWidth
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(BreakdownTitle))
	b.WriteString("\n")
	for _, seg := range segments {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color))
		n := int(seg.Percent * float64(width) / 100)
		if n == 0 && seg.Count > 0 {
			n = 1
		}
		b.WriteString(style.Render(seg.Line()))
		b.WriteString("\n")
		b.WriteString(style.Render(strings.Repeat(barRune, n)))
		b.WriteString(fmt.Sprintf(" %.0f%%\n", seg.Percent))
	}
	return strings.TrimRight(b.String(), "\n")
}
