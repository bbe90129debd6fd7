package workflow

import (
	"context"
	"fmt"
	"strings"

	"vidqa/normalize"
	"vidqa/types"
)

// ProcessVideo submits a video URL, adds the result to the library and
// selects it. On failure the library and selection are left unchanged.
func (r *Runner) ProcessVideo(ctx context.Context, videoURL string) (types.Video, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return types.Video{}, r.reject(ctx, types.WorkflowProcess, "", MsgEmptyURL)
	}

	if err := r.begin(types.WorkflowProcess, "", "Processing video..."); err != nil {
		return types.Video{}, err
	}
	defer r.end(types.WorkflowProcess, "")

	r.store.AddLog("Processing " + videoURL)
	resp, err := r.service.SubmitVideo(ctx, videoURL)
	if err != nil {
		return types.Video{}, r.fail(ctx, types.WorkflowProcess, "", "Failed to process video", err)
	}

	v := normalize.Video(resp.RawVideo, r.now())
	if v.SourceURL == "" {
		v.SourceURL = videoURL
	}
	if v.ID.IsZero() {
		v.ID = types.NewProvisionalID()
		r.log.Warn("service returned no video id, using provisional id", "url", videoURL, "video_id", v.ID.Value)
	}

	if err := r.store.AddAndSelect(v); err != nil {
		return types.Video{}, r.fail(ctx, types.WorkflowProcess, v.ID.Value, "Failed to add video", err)
	}

	r.succeed(ctx, types.WorkflowProcess, v.ID.Value, fmt.Sprintf("Video processed successfully: %s", v.Title))
	return v, nil
}
