// Package tui is the terminal front end. It renders session snapshots and
// turns key presses into workflow runs; it holds no session state of its own.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vidqa/session"
	"vidqa/workflow"
)

type focus int

const (
	focusURL focus = iota
	focusLibrary
	focusQuestion
	focusCount
)

// Model is the bubbletea model for the application
type Model struct {
	ctx            context.Context
	runner         *workflow.Runner
	healthInterval time.Duration

	focus    focus
	cursor   int
	url      textinput.Model
	question textinput.Model
	spinner  spinner.Model

	connected   bool
	healthKnown bool
	width       int
	quitting    bool
}

// NewModel creates a model driving r. ctx bounds every workflow run.
func NewModel(ctx context.Context, r *workflow.Runner, healthInterval time.Duration) Model {
	url := textinput.New()
	url.Placeholder = TextURLPlaceholder
	url.CharLimit = 512
	url.Width = 60
	url.Focus()

	question := textinput.New()
	question.Placeholder = TextQuestionPlaceholder
	question.CharLimit = 1000
	question.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPending))

	if healthInterval <= 0 {
		healthInterval = 5 * time.Second
	}

	return Model{
		ctx:            ctx,
		runner:         r,
		healthInterval: healthInterval,
		url:            url,
		question:       question,
		spinner:        sp,
	}
}

// Init starts the health poll, the initial library load and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		checkHealth(m.ctx, m.runner),
		healthTick(m.healthInterval),
		loadLibrary(m.ctx, m.runner),
		m.spinner.Tick,
	)
}

func (m Model) snapshot() session.Snapshot {
	return m.runner.Store().Snapshot()
}

// clampCursor keeps the cursor inside the library
func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.url.Blur()
	m.question.Blur()
	switch f {
	case focusURL:
		m.url.Focus()
	case focusQuestion:
		m.question.Focus()
	}
}
