package client

import (
	"context"
	"net/http"
)

// CheckHealth reports whether the service answers GET /health with a 2xx.
// It never fails; an unreachable service is simply false.
func (c *Client) CheckHealth(ctx context.Context) bool {
	return c.doJSONRequest(ctx, http.MethodGet, "/health", nil, nil) == nil
}
