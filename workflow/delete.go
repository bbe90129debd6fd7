package workflow

import (
	"context"
	"fmt"
	"strings"

	"vidqa/types"
)

// DeleteVideo removes a video from the service and then from the library.
// Nothing is removed locally until the service confirms. Provisional videos
// were never confirmed by the service, so they are only dropped locally.
func (r *Runner) DeleteVideo(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	v, ok := r.store.FindVideo(id)
	if id == "" || !ok {
		return r.reject(ctx, types.WorkflowDelete, id, MsgUnknownVideo)
	}

	if v.ID.Provisional {
		r.store.RemoveVideo(v.ID)
		r.succeed(ctx, types.WorkflowDelete, id, fmt.Sprintf("Removed unconfirmed video: %s", v.Title))
		return nil
	}

	if err := r.begin(types.WorkflowDelete, id, "Deleting video..."); err != nil {
		return err
	}
	defer r.end(types.WorkflowDelete, id)

	if err := r.service.DeleteVideo(ctx, id); err != nil {
		return r.fail(ctx, types.WorkflowDelete, id, "Failed to delete video", err)
	}

	r.store.RemoveVideo(v.ID)
	r.succeed(ctx, types.WorkflowDelete, id, fmt.Sprintf("Deleted video: %s", v.Title))
	return nil
}
