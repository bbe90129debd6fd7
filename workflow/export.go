package workflow

import (
	"context"

	"vidqa/types"
)

// ExportSummary stores the selected video's summary through the configured
// exporter and returns its location.
func (r *Runner) ExportSummary(ctx context.Context) (string, error) {
	if r.exporter == nil {
		return "", r.reject(ctx, types.WorkflowExport, "", MsgNoExporter)
	}

	snap := r.store.Snapshot()
	if snap.Selection == nil {
		return "", r.reject(ctx, types.WorkflowExport, "", MsgNoSelectionSummary)
	}
	videoID := snap.Selection.ID.Value
	if snap.Summary == nil {
		return "", r.reject(ctx, types.WorkflowExport, videoID, MsgNoSummary)
	}

	if err := r.begin(types.WorkflowExport, "", "Exporting summary..."); err != nil {
		return "", err
	}
	defer r.end(types.WorkflowExport, "")

	location, err := r.exporter.ExportSummary(ctx, *snap.Selection, *snap.Summary)
	if err != nil {
		return "", r.fail(ctx, types.WorkflowExport, videoID, "Failed to export summary", err)
	}

	r.succeed(ctx, types.WorkflowExport, videoID, "Summary exported to "+location)
	return location, nil
}
