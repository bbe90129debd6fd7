package types

import "time"

// Workflow names one user-triggered operation slot
type Workflow string

const (
	WorkflowProcess   Workflow = "process"
	WorkflowList      Workflow = "list"
	WorkflowDelete    Workflow = "delete"
	WorkflowAsk       Workflow = "ask"
	WorkflowSummarize Workflow = "summarize"
	WorkflowHistory   Workflow = "history"
	WorkflowExport    Workflow = "export"
	WorkflowImport    Workflow = "import"
)

// Workflows lists every slot in display order
var Workflows = []Workflow{
	WorkflowProcess,
	WorkflowList,
	WorkflowDelete,
	WorkflowAsk,
	WorkflowSummarize,
	WorkflowHistory,
	WorkflowExport,
	WorkflowImport,
}

// Phase is the lifecycle position of a workflow
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Status is the displayed state of one workflow
type Status struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
}

func Idle(message string) Status      { return Status{Phase: PhaseIdle, Message: message} }
func Pending(message string) Status   { return Status{Phase: PhasePending, Message: message} }
func Succeeded(message string) Status { return Status{Phase: PhaseSucceeded, Message: message} }
func Failed(message string) Status    { return Status{Phase: PhaseFailed, Message: message} }

// LogEntry represents a single activity line with timestamp
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Event outcomes
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeDiscarded = "discarded"
)

// Event describes one finished workflow run
type Event struct {
	ID       string    `json:"id"`
	Workflow Workflow  `json:"workflow"`
	VideoID  string    `json:"video_id,omitempty"`
	Outcome  string    `json:"outcome"`
	Message  string    `json:"message,omitempty"`
	At       time.Time `json:"at"`
}
