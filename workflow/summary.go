package workflow

import (
	"context"
	"errors"

	"vidqa/normalize"
	"vidqa/session"
	"vidqa/types"
)

// GenerateSummary requests a timestamped summary of the selected video and
// replaces any previous one. On failure the previous summary stays.
func (r *Runner) GenerateSummary(ctx context.Context) (types.Summary, error) {
	token, err := r.selected(ctx, types.WorkflowSummarize, MsgNoSelectionSummary)
	if err != nil {
		return types.Summary{}, err
	}
	videoID := token.VideoID.Value

	if err := r.begin(types.WorkflowSummarize, "", "Generating summary..."); err != nil {
		return types.Summary{}, err
	}
	defer r.end(types.WorkflowSummarize, "")

	resp, err := r.service.GenerateSummary(ctx, videoID)
	if err != nil {
		return types.Summary{}, r.fail(ctx, types.WorkflowSummarize, videoID, "Failed to generate summary", err)
	}

	summary := normalize.Summary(videoID, resp, r.now())
	if err := r.store.SetSummary(token, summary); err != nil {
		if errors.Is(err, session.ErrStale) {
			return types.Summary{}, r.discard(ctx, types.WorkflowSummarize, videoID)
		}
		return types.Summary{}, r.fail(ctx, types.WorkflowSummarize, videoID, "Failed to store summary", err)
	}

	r.succeed(ctx, types.WorkflowSummarize, videoID, "Summary generated successfully!")
	return summary, nil
}
