package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlog/internal/chart"
	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
)

const chartWidth = 30

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateMoods:
		content = m.viewMoods()
	case StateHistory:
		content = m.viewHistory()
	case StatePickTime, StateConfirmReset:
		content = m.form.View()
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		"",
		content,
		m.viewStatus(),
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	tabs := []string{"Log Mood", "History"}
	active := 0
	if m.state == StateHistory || m.state == StateConfirmReset {
		active = 1
	}

	var rendered []string
	for i, t := range tabs {
		if i == active {
			rendered = append(rendered, activeTabStyle.Render(t))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewMoods() string {
	t := m.SelectedTime().In(m.svc.Location())
	header := titleStyle.Render(fmt.Sprintf("How are you feeling? (%s, %s)",
		t.Format(constants.DateFormat+" "+constants.TimeFormat),
		models.TimeCategoryForHour(t.Hour())))

	var rows []string
	for start := 0; start < len(models.Catalog); start += gridColumns {
		var cells []string
		for i := start; i < start+gridColumns && i < len(models.Catalog); i++ {
			mt := models.Catalog[i]
			style := cellStyle
			if i == m.cursor {
				style = selectedCellStyle
			}
			cells = append(cells, style.Render(mt.Emoji+" "+mt.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(chart.Title))
	b.WriteString("\n")
	b.WriteString(chart.Render(m.segments, chartWidth))
	return b.String()
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return successStyle.Render(m.status)
	}
	return faintStyle.Render(" ")
}
