package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vidqa/types"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case WorkflowDoneMsg:
		return m.handleWorkflowDone(msg), nil

	case SelectedMsg:
		m.clampCursor(len(m.snapshot().Library))
		return m, nil

	case HealthMsg:
		m.connected = msg.Healthy
		m.healthKnown = true
		return m, nil

	case HealthTickMsg:
		return m, tea.Batch(checkHealth(m.ctx, m.runner), healthTick(m.healthInterval))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleWorkflowDone clears an input once its submission succeeded
func (m Model) handleWorkflowDone(msg WorkflowDoneMsg) Model {
	if msg.Err == nil {
		switch msg.Workflow {
		case types.WorkflowProcess:
			m.url.Reset()
		case types.WorkflowAsk:
			m.question.Reset()
		}
	}
	m.clampCursor(len(m.snapshot().Library))
	return m
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	switch m.focus {
	case focusURL:
		if msg.Type == tea.KeyEnter {
			return m, processVideo(m.ctx, m.runner, m.url.Value())
		}
		var cmd tea.Cmd
		m.url, cmd = m.url.Update(msg)
		return m, cmd

	case focusQuestion:
		if msg.Type == tea.KeyEnter {
			return m, askQuestion(m.ctx, m.runner, m.question.Value())
		}
		var cmd tea.Cmd
		m.question, cmd = m.question.Update(msg)
		return m, cmd
	}

	return m.handleLibraryKey(msg)
}

func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	library := m.snapshot().Library
	m.clampCursor(len(library))

	switch strings.ToLower(msg.String()) {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(library)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(library) > 0 {
			return m, selectVideo(m.runner, library[m.cursor].ID.Value)
		}
	case "x":
		if len(library) > 0 {
			return m, deleteVideo(m.ctx, m.runner, library[m.cursor].ID.Value)
		}
	case "s":
		return m, generateSummary(m.ctx, m.runner)
	case "h":
		return m, loadConversation(m.ctx, m.runner)
	case "c":
		return m, clearConversation(m.ctx, m.runner)
	case "e":
		return m, exportSummary(m.ctx, m.runner)
	case "r":
		return m, loadLibrary(m.ctx, m.runner)
	}
	return m, nil
}
