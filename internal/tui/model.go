package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlog/internal/chart"
	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/mood"
)

type SessionState int

const (
	StateMoods SessionState = iota
	StateHistory
	StatePickTime
	StateConfirmReset
)

const gridColumns = 2

type TimeFormModel struct {
	Date string
	Time string
}

type ResetFormModel struct {
	Confirm bool
}

type Model struct {
	svc     *mood.Service
	scope   constants.ResetScope
	onReset func()

	state     SessionState
	keys      KeyMap
	help      help.Model
	form      *huh.Form
	timeForm  *TimeFormModel
	resetForm *ResetFormModel

	cursor   int
	selected *time.Time
	segments []chart.Segment
	status   string
	err      error

	quitting bool
	width    int
	height   int
}

// NewModel builds the interactive model. onReset, if set, runs right before
// a confirmed reset clears the data.
func NewModel(svc *mood.Service, scope constants.ResetScope, onReset func()) Model {
	if scope == "" {
		scope = constants.DefaultResetScope
	}
	return Model{
		svc:     svc,
		scope:   scope,
		onReset: onReset,
		state:   StateMoods,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateMoods:
		keys = append(keys, m.keys.Enter, m.keys.Time)
	case StateHistory:
		keys = append(keys, m.keys.Reset)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}
	actions := []key.Binding{m.keys.Time, m.keys.Now, m.keys.Reset}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SelectedTime is the picked time, or the current time when none was picked
func (m Model) SelectedTime() time.Time {
	if m.selected != nil {
		return *m.selected
	}
	return m.svc.Now()
}

func (m Model) CurrentMood() models.MoodType {
	return models.Catalog[m.cursor]
}

func (m Model) State() SessionState {
	return m.state
}

func (m Model) Status() string {
	return m.status
}

func (m Model) Err() error {
	return m.err
}

func (m Model) Segments() []chart.Segment {
	return m.segments
}

func (m *Model) refreshHistory() {
	stats := m.svc.Stats(context.Background())
	m.segments = chart.Build(stats, models.Catalog)
}

func (m *Model) record() {
	entry, err := m.svc.Record(context.Background(), m.SelectedTime(), m.CurrentMood())
	if err != nil {
		m.err = err
		m.status = ""
		return
	}
	m.err = nil
	m.status = mood.Confirmation(entry)
}

func (m *Model) reset() {
	if m.onReset != nil {
		m.onReset()
	}
	if err := m.svc.Reset(context.Background(), m.scope); err != nil {
		m.err = err
		m.status = ""
	} else {
		m.err = nil
		m.status = "Mood history cleared"
	}
	m.refreshHistory()
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(models.Catalog) {
		return
	}
	m.cursor = next
}
