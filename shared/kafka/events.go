package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"vidqa/types"
)

// EventHandler decodes workflow events and passes them to Process.
// Messages that are not events are marked and skipped.
type EventHandler struct {
	Process func(ctx context.Context, event types.Event) error
}

// HandleMessage implements MessageHandler
func (h EventHandler) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var event types.Event
	if err := json.Unmarshal(message, &event); err != nil {
		return true, fmt.Errorf("invalid event payload: %w", err)
	}
	if event.Workflow == "" {
		return true, fmt.Errorf("event %q has no workflow", event.ID)
	}
	if err := h.Process(ctx, event); err != nil {
		return false, err
	}
	return true, nil
}
