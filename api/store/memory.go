package store

import (
	"context"
	"sync"

	"vidqa/types"
)

// Memory is an in-process Store
type Memory struct {
	mu            sync.RWMutex
	order         []string
	videos        map[string]Video
	conversations map[string][]types.ConversationMessage
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		videos:        make(map[string]Video),
		conversations: make(map[string][]types.ConversationMessage),
	}
}

func (m *Memory) SaveVideo(ctx context.Context, v Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.videos[v.ID]; !ok {
		m.order = append(m.order, v.ID)
	}
	m.videos[v.ID] = v
	return nil
}

func (m *Memory) Video(ctx context.Context, id string) (Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.videos[id]
	if !ok {
		return Video{}, ErrNotFound
	}
	return v, nil
}

func (m *Memory) Videos(ctx context.Context) ([]Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Video, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.videos[id])
	}
	return out, nil
}

func (m *Memory) DeleteVideo(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.videos[id]; !ok {
		return ErrNotFound
	}
	delete(m.videos, id)
	delete(m.conversations, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) AppendConversation(ctx context.Context, id string, msgs ...types.ConversationMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.conversations[id] = trimConversation(append(m.conversations[id], msgs...))
	return nil
}

func (m *Memory) Conversation(ctx context.Context, id string) ([]types.ConversationMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs, ok := m.conversations[id]
	return append([]types.ConversationMessage{}, msgs...), ok, nil
}

func (m *Memory) ClearConversation(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conversations[id]; !ok {
		return ErrNotFound
	}
	m.conversations[id] = []types.ConversationMessage{}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
