package tui

import (
	"fmt"
	"strings"

	"vidqa/session"
	"vidqa/types"
)

const maxLogLines = 5

// View renders the current session snapshot
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.box(focusURL, m.renderProcess(snap)))
	b.WriteString("\n")
	b.WriteString(m.box(focusLibrary, m.renderLibrary(snap)))
	b.WriteString("\n")
	b.WriteString(m.box(focusQuestion, m.renderQuestion(snap)))
	b.WriteString("\n")
	if results := m.renderResults(snap); results != "" {
		b.WriteString(BoxStyle.Render(results))
		b.WriteString("\n")
	}
	b.WriteString(m.renderActivity(snap))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(m.footer()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) box(f focus, content string) string {
	if m.focus == f {
		return FocusedBoxStyle.Render(content)
	}
	return BoxStyle.Render(content)
}

func (m Model) renderHeader() string {
	indicator := InfoStyle.Render("● checking service")
	if m.healthKnown {
		if m.connected {
			indicator = StatusStyle.Render(TextConnected)
		} else {
			indicator = ErrorStyle.Render(TextDisconnected)
		}
	}
	return TitleStyle.Render(TextTitle) + "  " + indicator
}

func (m Model) renderProcess(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(TextProcessLabel))
	b.WriteString("\n")
	b.WriteString(m.url.View())
	m.writeStatus(&b, snap.Status(types.WorkflowProcess))
	m.writeStatus(&b, snap.Status(types.WorkflowImport))
	return b.String()
}

func (m Model) renderLibrary(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%s (%d)", TextLibraryLabel, len(snap.Library))))

	if len(snap.Library) == 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextEmptyLibrary))
	}
	for i, v := range snap.Library {
		cursor := "  "
		if m.focus == focusLibrary && i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s • %s • %s", v.Title, v.Channel, v.Length)
		if v.ID.Provisional {
			line += " (unconfirmed)"
		}
		if snap.Selection != nil && snap.Selection.ID == v.ID {
			line = HighlightStyle.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(cursor + line)
	}

	m.writeStatus(&b, snap.Status(types.WorkflowList))
	m.writeStatus(&b, snap.Status(types.WorkflowDelete))
	return b.String()
}

func (m Model) renderQuestion(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(TextQuestionLabel))
	b.WriteString("\n")
	if snap.Selection == nil {
		b.WriteString(InfoStyle.Render(TextNoSelection))
		b.WriteString("\n")
	} else {
		b.WriteString(InfoStyle.Render("About: " + snap.Selection.Title))
		b.WriteString("\n")
	}
	b.WriteString(m.question.View())
	m.writeStatus(&b, snap.Status(types.WorkflowAsk))
	return b.String()
}

func (m Model) renderResults(snap session.Snapshot) string {
	var sections []string

	if a := snap.Answer; a != nil {
		var b strings.Builder
		label := TextAnswerLabel
		if a.AnswerType == types.AnswerTypeHybrid {
			label += " (video + web)"
		}
		b.WriteString(LabelStyle.Render(label))
		b.WriteString("\n")
		if a.Question != "" {
			b.WriteString(InfoStyle.Render("Q: " + a.Question))
			b.WriteString("\n")
		}
		b.WriteString(a.Text)
		if len(a.Sources) > 0 {
			b.WriteString("\n\n")
			b.WriteString(LabelStyle.Render(TextSourcesLabel))
			for _, src := range a.Sources {
				b.WriteString("\n• ")
				b.WriteString(src.Label)
				if src.Text != "" {
					b.WriteString(": ")
					b.WriteString(InfoStyle.Render(src.Text))
				}
			}
		}
		sections = append(sections, b.String())
	}

	if s := snap.Summary; s != nil {
		sections = append(sections, LabelStyle.Render(TextSummaryLabel)+"\n"+s.Text)
	}

	var statuses strings.Builder
	m.writeStatus(&statuses, snap.Status(types.WorkflowSummarize))
	m.writeStatus(&statuses, snap.Status(types.WorkflowExport))
	m.writeStatus(&statuses, snap.Status(types.WorkflowHistory))
	if snap.Selection != nil {
		statuses.WriteString("\n")
		statuses.WriteString(InfoStyle.Render(fmt.Sprintf("Conversation: %d messages", len(snap.Conversation))))
	}
	if s := strings.TrimPrefix(statuses.String(), "\n"); s != "" {
		sections = append(sections, s)
	}

	return strings.Join(sections, "\n\n")
}

func (m Model) renderActivity(snap session.Snapshot) string {
	if len(snap.Logs) == 0 {
		return ""
	}
	logs := snap.Logs
	if len(logs) > maxLogLines {
		logs = logs[len(logs)-maxLogLines:]
	}
	var b strings.Builder
	b.WriteString(LabelStyle.Render(TextActivityLabel))
	for _, entry := range logs {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("[%s] %s", entry.Timestamp.Format("15:04:05"), entry.Message)))
	}
	return b.String()
}

// writeStatus appends one status line, nothing for a silent idle slot
func (m Model) writeStatus(b *strings.Builder, st types.Status) {
	var line string
	switch st.Phase {
	case types.PhasePending:
		line = m.spinner.View() + " " + PendingStyle.Render(st.Message)
	case types.PhaseSucceeded:
		line = StatusStyle.Render("✓ " + st.Message)
	case types.PhaseFailed:
		line = ErrorStyle.Render("✗ " + st.Message)
	default:
		if st.Message == "" {
			return
		}
		line = InfoStyle.Render(st.Message)
	}
	b.WriteString("\n")
	b.WriteString(line)
}

func (m Model) footer() string {
	if m.focus == focusLibrary {
		return TextFooterLibrary
	}
	return TextFooterInput
}
