package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"vidqa/types"
)

func TestPublishEncodesEvent(t *testing.T) {
	mock := mocks.NewSyncProducer(t, NewSaramaConfig())
	event := types.Event{
		ID:       "e1",
		Workflow: types.WorkflowProcess,
		VideoID:  "abc123",
		Outcome:  types.OutcomeSucceeded,
		Message:  "Video processed successfully: Intro to AI",
		At:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "vidqa.events" {
			return fmt.Errorf("topic = %q", msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "abc123" {
			return fmt.Errorf("key = %q", key)
		}
		raw, _ := msg.Value.Encode()
		var got types.Event
		if err := json.Unmarshal(raw, &got); err != nil {
			return err
		}
		if got.ID != event.ID || got.Workflow != event.Workflow || !got.At.Equal(event.At) {
			return fmt.Errorf("decoded %+v", got)
		}
		return nil
	})

	p := WrapProducer(mock, "vidqa.events", nil)
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestPublishKeysByWorkflowWithoutVideo(t *testing.T) {
	mock := mocks.NewSyncProducer(t, NewSaramaConfig())
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != string(types.WorkflowList) {
			return fmt.Errorf("key = %q", key)
		}
		return nil
	})

	p := WrapProducer(mock, "vidqa.events", nil)
	if err := p.Publish(context.Background(), types.Event{Workflow: types.WorkflowList}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	_ = p.Close()
}

func TestPublishFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, NewSaramaConfig())
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := WrapProducer(mock, "vidqa.events", nil)
	err := p.Publish(context.Background(), types.Event{Workflow: types.WorkflowAsk})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}
	_ = p.Close()
}

func TestPublishCanceledContext(t *testing.T) {
	mock := mocks.NewSyncProducer(t, NewSaramaConfig())
	p := WrapProducer(mock, "vidqa.events", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Publish(ctx, types.Event{Workflow: types.WorkflowAsk}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	_ = p.Close()
}

func TestNewProducerRequiresBrokersAndTopic(t *testing.T) {
	if _, err := NewProducer(ProducerConfig{Topic: "t"}); err == nil {
		t.Fatal("expected error without brokers")
	}
	if _, err := NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}}); err == nil {
		t.Fatal("expected error without topic")
	}
}

func TestEventHandler(t *testing.T) {
	var got []types.Event
	h := EventHandler{Process: func(ctx context.Context, e types.Event) error {
		if e.VideoID == "bad" {
			return errors.New("boom")
		}
		got = append(got, e)
		return nil
	}}

	payload, _ := json.Marshal(types.Event{ID: "1", Workflow: types.WorkflowAsk, VideoID: "abc"})
	if mark, err := h.HandleMessage(context.Background(), payload); !mark || err != nil {
		t.Fatalf("valid event: mark=%v err=%v", mark, err)
	}

	if mark, err := h.HandleMessage(context.Background(), []byte("not json")); !mark || err == nil {
		t.Fatalf("malformed payload should be marked and reported: mark=%v err=%v", mark, err)
	}

	if mark, err := h.HandleMessage(context.Background(), []byte(`{"id":"2"}`)); !mark || err == nil {
		t.Fatalf("event without workflow should be skipped: mark=%v err=%v", mark, err)
	}

	bad, _ := json.Marshal(types.Event{ID: "3", Workflow: types.WorkflowAsk, VideoID: "bad"})
	if mark, err := h.HandleMessage(context.Background(), bad); mark || err == nil {
		t.Fatalf("processing failure should leave the message unmarked: mark=%v err=%v", mark, err)
	}

	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("processed = %+v", got)
	}
}
