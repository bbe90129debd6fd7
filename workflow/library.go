package workflow

import (
	"context"
	"fmt"

	"vidqa/normalize"
	"vidqa/types"
)

// LoadLibrary fetches the service's video list and replaces the library.
// Videos added or deleted locally while the request was out keep their
// local state. A failure is reported and leaves the library as it was, so
// the session keeps working with whatever it has.
func (r *Runner) LoadLibrary(ctx context.Context) error {
	if err := r.begin(types.WorkflowList, "", "Loading library..."); err != nil {
		return err
	}
	defer r.end(types.WorkflowList, "")

	since := r.store.LibraryVersion()
	resp, err := r.service.ListVideos(ctx)
	if err != nil {
		return r.fail(ctx, types.WorkflowList, "", "Failed to load library", err)
	}

	videos := normalize.Videos(resp, r.now())
	kept := make([]types.Video, 0, len(videos))
	for _, v := range videos {
		if v.ID.IsZero() {
			r.log.Warn("skipping listed video without id", "title", v.Title)
			continue
		}
		kept = append(kept, v)
	}

	r.store.ReplaceLibrarySince(since, kept)
	r.succeed(ctx, types.WorkflowList, "", fmt.Sprintf("Loaded %d videos", len(kept)))
	return nil
}
