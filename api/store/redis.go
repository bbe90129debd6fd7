package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vidqa/types"
)

// RedisConfig configures the Redis-backed store
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	// Prefix namespaces every key, default "vidqa:"
	Prefix string
}

// Redis keeps videos as JSON strings, their processing order in a sorted
// set and each conversation in a capped list.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to Redis and verifies connectivity
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "vidqa:"
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) videoKey(id string) string        { return r.prefix + "video:" + id }
func (r *Redis) orderKey() string                 { return r.prefix + "videos" }
func (r *Redis) conversationKey(id string) string { return r.prefix + "conversation:" + id }
func (r *Redis) startedKey() string               { return r.prefix + "conversations" }

func (r *Redis) SaveVideo(ctx context.Context, v Video) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.videoKey(v.ID), payload, 0)
		// NX keeps the original position when a video is reprocessed
		pipe.ZAddNX(ctx, r.orderKey(), redis.Z{Score: float64(v.ProcessedAt.UnixNano()), Member: v.ID})
		return nil
	})
	return err
}

func (r *Redis) Video(ctx context.Context, id string) (Video, error) {
	payload, err := r.client.Get(ctx, r.videoKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Video{}, ErrNotFound
	}
	if err != nil {
		return Video{}, err
	}

	var v Video
	if err := json.Unmarshal(payload, &v); err != nil {
		return Video{}, fmt.Errorf("corrupt video %s: %w", id, err)
	}
	return v, nil
}

func (r *Redis) Videos(ctx context.Context) ([]Video, error) {
	ids, err := r.client.ZRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Video{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.videoKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Video, 0, len(values))
	for _, val := range values {
		s, ok := val.(string)
		if !ok {
			continue
		}
		var v Video
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Redis) DeleteVideo(ctx context.Context, id string) error {
	var removed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.Del(ctx, r.videoKey(id))
		pipe.ZRem(ctx, r.orderKey(), id)
		pipe.Del(ctx, r.conversationKey(id))
		pipe.SRem(ctx, r.startedKey(), id)
		return nil
	})
	if err != nil {
		return err
	}
	if removed.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) AppendConversation(ctx context.Context, id string, msgs ...types.ConversationMessage) error {
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		payload, err := json.Marshal(m)
		if err != nil {
			return err
		}
		values = append(values, payload)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, r.startedKey(), id)
		if len(values) > 0 {
			pipe.RPush(ctx, r.conversationKey(id), values...)
			pipe.LTrim(ctx, r.conversationKey(id), -MaxConversationMessages, -1)
		}
		return nil
	})
	return err
}

func (r *Redis) Conversation(ctx context.Context, id string) ([]types.ConversationMessage, bool, error) {
	started, err := r.client.SIsMember(ctx, r.startedKey(), id).Result()
	if err != nil {
		return nil, false, err
	}
	raw, err := r.client.LRange(ctx, r.conversationKey(id), 0, -1).Result()
	if err != nil {
		return nil, false, err
	}

	msgs := make([]types.ConversationMessage, 0, len(raw))
	for _, s := range raw {
		var m types.ConversationMessage
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, started, nil
}

func (r *Redis) ClearConversation(ctx context.Context, id string) error {
	started, err := r.client.SIsMember(ctx, r.startedKey(), id).Result()
	if err != nil {
		return err
	}
	if !started {
		return ErrNotFound
	}
	return r.client.Del(ctx, r.conversationKey(id)).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
