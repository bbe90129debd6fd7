package tui

import (
	"time"

	"vidqa/types"
)

// Messages for the tea program

// WorkflowDoneMsg is sent when a runner call returns. The result itself is
// already in the session store.
type WorkflowDoneMsg struct {
	Workflow types.Workflow
	Err      error
}

// HealthMsg carries the result of a health probe
type HealthMsg struct {
	Healthy bool
}

// HealthTickMsg is sent periodically to trigger a health probe
type HealthTickMsg struct {
	Time time.Time
}

// SelectedMsg is sent after a library entry was selected
type SelectedMsg struct {
	ID  string
	Err error
}
