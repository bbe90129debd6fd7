package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"vidqa/types"
)

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers []string
	Topic   string
	Logger  *slog.Logger
}

// Producer publishes workflow events to a Kafka topic. Events are keyed by
// video id so one video's history stays on one partition.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *slog.Logger
}

// NewSaramaConfig returns the producer settings used for workflow events
func NewSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

// NewProducer connects a synchronous producer to the brokers
func NewProducer(config ProducerConfig) (*Producer, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	if config.Topic == "" {
		return nil, fmt.Errorf("no kafka topic configured")
	}

	p, err := sarama.NewSyncProducer(config.Brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return WrapProducer(p, config.Topic, config.Logger), nil
}

// WrapProducer publishes through an existing sarama producer
func WrapProducer(p sarama.SyncProducer, topic string, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Producer{producer: p, topic: topic, log: logger}
}

// Publish sends one workflow event
func (p *Producer) Publish(ctx context.Context, event types.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	key := event.VideoID
	if key == "" {
		key = string(event.Workflow)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("workflow"), Value: []byte(event.Workflow)},
			{Key: []byte("outcome"), Value: []byte(event.Outcome)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.log.Debug("published workflow event",
		"workflow", event.Workflow,
		"video_id", event.VideoID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// Close flushes and shuts down the producer
func (p *Producer) Close() error {
	return p.producer.Close()
}
