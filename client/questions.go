package client

import (
	"context"
	"net/http"
	"net/url"

	"vidqa/types"
)

// AskQuestion asks a question about one processed video. History carries the
// earlier turns of the conversation and may be empty.
func (c *Client) AskQuestion(ctx context.Context, videoID, question string, history []types.ConversationMessage) (*AnswerResponse, error) {
	if history == nil {
		history = []types.ConversationMessage{}
	}
	payload := map[string]interface{}{
		"video_id":             videoID,
		"question":             question,
		"conversation_history": history,
	}

	var result AnswerResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/questions/ask", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Conversation fetches the question history the service keeps for a video
func (c *Client) Conversation(ctx context.Context, videoID string) (*ConversationResponse, error) {
	var result ConversationResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/questions/conversation/"+url.PathEscape(videoID), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ClearConversation drops the question history for a video
func (c *Client) ClearConversation(ctx context.Context, videoID string) error {
	return c.doJSONRequest(ctx, http.MethodDelete, "/questions/conversation/"+url.PathEscape(videoID), nil, nil)
}
