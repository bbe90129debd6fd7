// Package store keeps the mock service's processed videos and
// conversations.
package store

import (
	"context"
	"errors"
	"time"

	"vidqa/types"
)

// MaxConversationMessages bounds the history kept per video
const MaxConversationMessages = 10

// ErrNotFound is returned for unknown video ids
var ErrNotFound = errors.New("video not found")

// Video is a processed video as the service records it
type Video struct {
	ID               string    `json:"video_id"`
	URL              string    `json:"url"`
	Title            string    `json:"title"`
	Channel          string    `json:"channel"`
	PublishDate      string    `json:"publish_date"`
	Duration         string    `json:"duration,omitempty"`
	Description      string    `json:"description,omitempty"`
	TranscriptLength int       `json:"transcript_length"`
	ChunksCreated    int       `json:"chunks_created"`
	ProcessedAt      time.Time `json:"processed_at"`
}

// Store persists videos and their conversations
type Store interface {
	// SaveVideo inserts or replaces a video by id
	SaveVideo(ctx context.Context, v Video) error
	Video(ctx context.Context, id string) (Video, error)
	// Videos lists videos in processing order
	Videos(ctx context.Context) ([]Video, error)
	// DeleteVideo removes a video and its conversation
	DeleteVideo(ctx context.Context, id string) error

	// AppendConversation adds messages, keeping the newest
	// MaxConversationMessages
	AppendConversation(ctx context.Context, id string, msgs ...types.ConversationMessage) error
	// Conversation returns the history and whether one was ever started
	Conversation(ctx context.Context, id string) ([]types.ConversationMessage, bool, error)
	ClearConversation(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}

func trimConversation(msgs []types.ConversationMessage) []types.ConversationMessage {
	if len(msgs) > MaxConversationMessages {
		return msgs[len(msgs)-MaxConversationMessages:]
	}
	return msgs
}
