package workflow

import (
	"context"
	"fmt"
	"strings"

	"vidqa/types"
)

// ImportFailure records one feed entry that could not be processed
type ImportFailure struct {
	URL    string
	Reason string
}

// ImportResult summarizes a feed import
type ImportResult struct {
	Processed []types.Video
	Failed    []ImportFailure
}

// ImportFeed resolves a channel or playlist feed and processes each video in
// order. A failing entry does not stop the rest.
func (r *Runner) ImportFeed(ctx context.Context, feedURL string, limit int) (ImportResult, error) {
	feedURL = strings.TrimSpace(feedURL)
	if r.feeds == nil {
		return ImportResult{}, r.reject(ctx, types.WorkflowImport, "", MsgNoFeedSource)
	}
	if feedURL == "" {
		return ImportResult{}, r.reject(ctx, types.WorkflowImport, "", MsgNoFeedURL)
	}

	if err := r.begin(types.WorkflowImport, "", "Reading feed..."); err != nil {
		return ImportResult{}, err
	}
	defer r.end(types.WorkflowImport, "")

	urls, err := r.feeds.VideoURLs(ctx, feedURL, limit)
	if err != nil {
		return ImportResult{}, r.fail(ctx, types.WorkflowImport, "", "Failed to read feed", err)
	}

	var result ImportResult
	for i, u := range urls {
		if ctx.Err() != nil {
			result.Failed = append(result.Failed, ImportFailure{URL: u, Reason: ctx.Err().Error()})
			continue
		}
		r.store.SetStatus(types.WorkflowImport, types.Pending(fmt.Sprintf("Processing %d/%d...", i+1, len(urls))))

		v, err := r.ProcessVideo(ctx, u)
		if err != nil {
			result.Failed = append(result.Failed, ImportFailure{URL: u, Reason: errorMessage(err)})
			continue
		}
		result.Processed = append(result.Processed, v)
	}

	r.succeed(ctx, types.WorkflowImport, "", fmt.Sprintf("Imported %d of %d videos", len(result.Processed), len(urls)))
	return result, nil
}
