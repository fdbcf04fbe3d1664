package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
	}

	switch m.state {
	case StatePickTime:
		return m.updateTimeForm(msg)
	case StateConfirmReset:
		return m.updateResetForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		if m.state == StateMoods {
			m.state = StateHistory
			m.refreshHistory()
		} else {
			m.state = StateMoods
		}
		return m, nil
	}

	switch m.state {
	case StateMoods:
		return m.updateMoods(keyMsg)
	case StateHistory:
		return m.updateHistory(keyMsg)
	}
	return m, nil
}

func (m Model) updateMoods(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursor%gridColumns > 0 {
			m.moveCursor(-1)
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%gridColumns < gridColumns-1 {
			m.moveCursor(1)
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-gridColumns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(gridColumns)
	case key.Matches(msg, m.keys.Enter):
		m.record()
	case key.Matches(msg, m.keys.Now):
		m.selected = nil
		m.status = "Using current time"
	case key.Matches(msg, m.keys.Time):
		current := m.SelectedTime().In(m.svc.Location())
		m.timeForm = &TimeFormModel{
			Date: current.Format(constants.DateFormat),
			Time: current.Format(constants.TimeFormat),
		}
		m.form = NewTimeForm(m.timeForm)
		m.state = StatePickTime
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Reset) {
		m.resetForm = &ResetFormModel{}
		m.form = NewResetForm(m.resetForm)
		m.state = StateConfirmReset
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateTimeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateMoods
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		t, err := utils.ResolveSelectedTime(m.svc.Now(), m.timeForm.Date, m.timeForm.Time, m.svc.Location())
		if err != nil {
			// Stay in the form so the value can be corrected
			m.err = err
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.selected = &t
		m.err = nil
		m.status = "Recording for " + t.Format(constants.DateFormat+" "+constants.TimeFormat)
		m.state = StateMoods
	case huh.StateAborted:
		m.state = StateMoods
	}
	return m, cmd
}

func (m Model) updateResetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateHistory
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.resetForm.Confirm {
			m.reset()
		}
		m.state = StateHistory
	case huh.StateAborted:
		m.state = StateHistory
	}
	return m, cmd
}
