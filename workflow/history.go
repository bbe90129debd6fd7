package workflow

import (
	"context"
	"errors"
	"fmt"

	"vidqa/session"
	"vidqa/types"
)

// LoadConversation replaces the local question history of the selected
// video with the one the service kept.
func (r *Runner) LoadConversation(ctx context.Context) ([]types.ConversationMessage, error) {
	token, err := r.selected(ctx, types.WorkflowHistory, MsgNoSelectionHistory)
	if err != nil {
		return nil, err
	}
	videoID := token.VideoID.Value

	if err := r.begin(types.WorkflowHistory, "", "Loading conversation..."); err != nil {
		return nil, err
	}
	defer r.end(types.WorkflowHistory, "")

	resp, err := r.service.Conversation(ctx, videoID)
	if err != nil {
		return nil, r.fail(ctx, types.WorkflowHistory, videoID, "Failed to load conversation", err)
	}

	msgs := make([]types.ConversationMessage, 0, len(resp.Conversation))
	for _, m := range resp.Conversation {
		if m.Content == "" {
			continue
		}
		msgs = append(msgs, m)
	}

	if err := r.store.SetConversation(token, msgs); err != nil {
		if errors.Is(err, session.ErrStale) {
			return nil, r.discard(ctx, types.WorkflowHistory, videoID)
		}
		return nil, r.fail(ctx, types.WorkflowHistory, videoID, "Failed to store conversation", err)
	}

	r.succeed(ctx, types.WorkflowHistory, videoID, fmt.Sprintf("Loaded %d conversation messages", len(msgs)))
	return msgs, nil
}

// ClearConversation drops the question history of the selected video on the
// service and locally.
func (r *Runner) ClearConversation(ctx context.Context) error {
	token, err := r.selected(ctx, types.WorkflowHistory, MsgNoSelectionHistory)
	if err != nil {
		return err
	}
	videoID := token.VideoID.Value

	if err := r.begin(types.WorkflowHistory, "", "Clearing conversation..."); err != nil {
		return err
	}
	defer r.end(types.WorkflowHistory, "")

	if err := r.service.ClearConversation(ctx, videoID); err != nil {
		return r.fail(ctx, types.WorkflowHistory, videoID, "Failed to clear conversation", err)
	}

	if err := r.store.SetConversation(token, nil); err != nil {
		if errors.Is(err, session.ErrStale) {
			return r.discard(ctx, types.WorkflowHistory, videoID)
		}
		return r.fail(ctx, types.WorkflowHistory, videoID, "Failed to clear conversation", err)
	}

	r.succeed(ctx, types.WorkflowHistory, videoID, "Conversation cleared")
	return nil
}
