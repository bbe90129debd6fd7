package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response is read for its detail
const maxErrorBody = 4 << 10

// doJSONRequest performs a JSON request with the given method, path, payload, and result.
// Every failure is returned as a *TransportError. If result is nil, the response
// body is discarded. Field-level type mismatches in an otherwise valid JSON body
// are tolerated so that normalization can apply its defaults.
func (c *Client) doJSONRequest(ctx context.Context, method, path string, payload, result interface{}) error {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return &TransportError{Message: "failed to marshal request", Err: err}
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &TransportError{Message: "failed to create request", Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Message: unreachableMessage(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &TransportError{
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp.StatusCode, bodyBytes),
		}
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if err := json.Unmarshal(data, result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil
		}
		return &TransportError{StatusCode: resp.StatusCode, Message: "malformed response", Err: err}
	}

	return nil
}

// statusMessage builds the error text from the HTTP status text and, when the
// service sent one, its "detail" or "error" field.
func statusMessage(code int, body []byte) string {
	text := http.StatusText(code)
	if text == "" {
		text = fmt.Sprintf("HTTP %d", code)
	}

	var envelope struct {
		Detail interface{} `json:"detail"`
		Error  string      `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return text
	}

	detail := envelope.Error
	if s, ok := envelope.Detail.(string); ok && strings.TrimSpace(s) != "" {
		detail = s
	}
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return text
	}
	return text + ": " + detail
}

func unreachableMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}
	return "could not connect to the service"
}
