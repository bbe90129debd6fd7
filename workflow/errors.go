package workflow

import (
	"errors"

	"vidqa/session"
	"vidqa/types"
)

// Messages shown when input is rejected before any network call
const (
	MsgEmptyURL           = "Please enter a valid YouTube URL"
	MsgEmptyQuestion      = "Please enter a question"
	MsgNoSelectionAsk     = "Select a video before asking a question"
	MsgNoSelectionSummary = "Select a video before generating a summary"
	MsgNoSelectionHistory = "Select a video to see its conversation"
	MsgProvisional        = "Video is still being confirmed by the service"
	MsgUnknownVideo       = "Video is not in the library"
	MsgNoSummary          = "Generate a summary before exporting"
	MsgNoExporter         = "Summary export is not configured"
	MsgNoFeedURL          = "Please enter a feed URL"
	MsgNoFeedSource       = "Feed import is not configured"
	MsgStale              = "Discarded response for a video that is no longer selected"
)

var (
	// ErrBusy is returned when the workflow slot already has a pending run.
	// The new invocation is ignored and the status is left untouched.
	ErrBusy = errors.New("workflow already in progress")
	// ErrStale is returned when a response was discarded because the
	// selection changed while it was pending
	ErrStale = session.ErrStale
)

// ValidationError reports input rejected before reaching the service
type ValidationError struct {
	Workflow types.Workflow
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
