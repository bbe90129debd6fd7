package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"vidqa/types"
)

// exerciseStore runs the behaviour every Store implementation shares
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		v := Video{ID: id, Title: "Video " + id, ProcessedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.SaveVideo(ctx, v); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	// reprocessing keeps the position
	if err := s.SaveVideo(ctx, Video{ID: "a", Title: "updated", ProcessedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	videos, err := s.Videos(ctx)
	if err != nil {
		t.Fatalf("videos: %v", err)
	}
	if len(videos) != 3 || videos[0].ID != "a" || videos[0].Title != "updated" || videos[2].ID != "c" {
		t.Fatalf("videos = %+v", videos)
	}

	if _, err := s.Video(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, started, _ := s.Conversation(ctx, "b"); started {
		t.Fatal("conversation should not exist yet")
	}
	if err := s.ClearConversation(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("clearing an unknown conversation: %v", err)
	}
	for i := 0; i < MaxConversationMessages; i++ {
		err := s.AppendConversation(ctx, "b",
			types.ConversationMessage{Role: types.RoleUser, Content: fmt.Sprintf("q%d", i)},
			types.ConversationMessage{Role: types.RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	msgs, started, err := s.Conversation(ctx, "b")
	if err != nil || !started {
		t.Fatalf("conversation: %v started=%v", err, started)
	}
	if len(msgs) != MaxConversationMessages || msgs[len(msgs)-1].Content != fmt.Sprintf("a%d", MaxConversationMessages-1) {
		t.Fatalf("conversation not capped to the newest messages: %+v", msgs)
	}

	if err := s.ClearConversation(ctx, "b"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	msgs, started, _ = s.Conversation(ctx, "b")
	if len(msgs) != 0 || !started {
		t.Fatalf("cleared conversation = %+v started=%v", msgs, started)
	}

	if err := s.DeleteVideo(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteVideo(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
	if _, started, _ := s.Conversation(ctx, "b"); started {
		t.Fatal("deleting a video drops its conversation")
	}
	videos, _ = s.Videos(ctx)
	if len(videos) != 2 {
		t.Fatalf("videos after delete = %+v", videos)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

// TestRedisStore runs against a real server when VIDQA_TEST_REDIS_ADDR is set
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("VIDQA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VIDQA_TEST_REDIS_ADDR not set")
	}

	s, err := NewRedis(RedisConfig{Addr: addr, Prefix: fmt.Sprintf("vidqa-test-%d:", time.Now().UnixNano())})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)
}
