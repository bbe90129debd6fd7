package client

import (
	"context"
	"net/http"
)

// GenerateSummary requests a timestamped summary of a processed video
func (c *Client) GenerateSummary(ctx context.Context, videoID string) (*SummaryResponse, error) {
	payload := map[string]string{
		"video_id": videoID,
	}

	var result SummaryResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/summaries/generate", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
