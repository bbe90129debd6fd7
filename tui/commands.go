package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vidqa/types"
	"vidqa/workflow"
)

// Every command runs a runner method off the UI goroutine and reports back
// with a WorkflowDoneMsg.

func processVideo(ctx context.Context, r *workflow.Runner, url string) tea.Cmd {
	return func() tea.Msg {
		_, err := r.ProcessVideo(ctx, url)
		return WorkflowDoneMsg{Workflow: types.WorkflowProcess, Err: err}
	}
}

func loadLibrary(ctx context.Context, r *workflow.Runner) tea.Cmd {
	return func() tea.Msg {
		return WorkflowDoneMsg{Workflow: types.WorkflowList, Err: r.LoadLibrary(ctx)}
	}
}

func deleteVideo(ctx context.Context, r *workflow.Runner, id string) tea.Cmd {
	return func() tea.Msg {
		return WorkflowDoneMsg{Workflow: types.WorkflowDelete, Err: r.DeleteVideo(ctx, id)}
	}
}

func askQuestion(ctx context.Context, r *workflow.Runner, question string) tea.Cmd {
	return func() tea.Msg {
		_, err := r.AskQuestion(ctx, question)
		return WorkflowDoneMsg{Workflow: types.WorkflowAsk, Err: err}
	}
}

func generateSummary(ctx context.Context, r *workflow.Runner) tea.Cmd {
	return func() tea.Msg {
		_, err := r.GenerateSummary(ctx)
		return WorkflowDoneMsg{Workflow: types.WorkflowSummarize, Err: err}
	}
}

func loadConversation(ctx context.Context, r *workflow.Runner) tea.Cmd {
	return func() tea.Msg {
		_, err := r.LoadConversation(ctx)
		return WorkflowDoneMsg{Workflow: types.WorkflowHistory, Err: err}
	}
}

func exportSummary(ctx context.Context, r *workflow.Runner) tea.Cmd {
	return func() tea.Msg {
		_, err := r.ExportSummary(ctx)
		return WorkflowDoneMsg{Workflow: types.WorkflowExport, Err: err}
	}
}

// checkHealth probes the service
func checkHealth(ctx context.Context, r *workflow.Runner) tea.Cmd {
	return func() tea.Msg {
		return HealthMsg{Healthy: r.CheckHealth(ctx)}
	}
}

// healthTick schedules the next health probe
func healthTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return HealthTickMsg{Time: t}
	})
}

func clearConversation(ctx context.Context, r *workflow.Runner) tea.Cmd {
	return func() tea.Msg {
		return WorkflowDoneMsg{Workflow: types.WorkflowHistory, Err: r.ClearConversation(ctx)}
	}
}

func selectVideo(r *workflow.Runner, id string) tea.Cmd {
	return func() tea.Msg {
		return SelectedMsg{ID: id, Err: r.Select(id)}
	}
}
