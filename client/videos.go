package client

import (
	"context"
	"net/http"
	"net/url"
)

// SubmitVideo asks the service to transcribe and index a video
func (c *Client) SubmitVideo(ctx context.Context, videoURL string) (*ProcessResponse, error) {
	payload := map[string]string{
		"video_url": videoURL,
	}

	var result ProcessResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/videos/process", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListVideos fetches every video the service has processed
func (c *Client) ListVideos(ctx context.Context) (*ListResponse, error) {
	var result ListResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/videos/list", nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteVideo removes a processed video from the service
func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	return c.doJSONRequest(ctx, http.MethodDelete, "/videos/"+url.PathEscape(videoID), nil, nil)
}
