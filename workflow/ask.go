package workflow

import (
	"context"
	"errors"
	"strings"

	"vidqa/normalize"
	"vidqa/session"
	"vidqa/types"
)

// AskQuestion asks about the selected video and commits the answer and its
// sources. On failure the previous answer stays on screen. A response that
// arrives after the selection changed is discarded.
func (r *Runner) AskQuestion(ctx context.Context, question string) (types.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return types.Answer{}, r.reject(ctx, types.WorkflowAsk, "", MsgEmptyQuestion)
	}

	token, err := r.selected(ctx, types.WorkflowAsk, MsgNoSelectionAsk)
	if err != nil {
		return types.Answer{}, err
	}
	videoID := token.VideoID.Value

	if err := r.begin(types.WorkflowAsk, "", "Generating answer..."); err != nil {
		return types.Answer{}, err
	}
	defer r.end(types.WorkflowAsk, "")

	history := r.store.Conversation()
	resp, err := r.service.AskQuestion(ctx, videoID, question, history)
	if err != nil {
		return types.Answer{}, r.fail(ctx, types.WorkflowAsk, videoID, "Failed to get answer", err)
	}

	answer := normalize.Answer(videoID, question, resp, r.now())
	if err := r.store.SetAnswer(token, answer); err != nil {
		if errors.Is(err, session.ErrStale) {
			return types.Answer{}, r.discard(ctx, types.WorkflowAsk, videoID)
		}
		return types.Answer{}, r.fail(ctx, types.WorkflowAsk, videoID, "Failed to store answer", err)
	}

	r.succeed(ctx, types.WorkflowAsk, videoID, "Answer generated successfully!")
	return answer, nil
}

// selected returns the current selection token, rejecting a missing or
// provisional selection.
func (r *Runner) selected(ctx context.Context, w types.Workflow, missing string) (session.Token, error) {
	token, ok := r.store.Selection()
	if !ok {
		return session.Token{}, r.reject(ctx, w, "", missing)
	}
	if token.VideoID.Provisional {
		return session.Token{}, r.reject(ctx, w, token.VideoID.Value, MsgProvisional)
	}
	return token, nil
}
