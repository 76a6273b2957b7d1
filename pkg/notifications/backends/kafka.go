package backends

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/annotation-forge/annotator/pkg/notifications"
)

// KafkaBackend publishes notifications to a Redpanda/Kafka topic, for UIs
// that subscribe to the notification stream instead of polling.
type KafkaBackend struct {
	client *kgo.Client
	topic  string
}

// KafkaBackendConfig holds configuration for the kafka backend
type KafkaBackendConfig struct {
	Brokers []string
	Topic   string
}

// NewKafkaBackend creates a new kafka backend
func NewKafkaBackend(cfg KafkaBackendConfig) (*KafkaBackend, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),

		// Wait for all in-sync replicas to acknowledge
		kgo.RequiredAcks(kgo.AllISRAcks()),

		// Retry with linear backoff, capped at 10s
		kgo.RetryBackoffFn(func(tries int) time.Duration {
			backoff := time.Duration(tries) * 100 * time.Millisecond
			if backoff > 10*time.Second {
				backoff = 10 * time.Second
			}
			return backoff
		}),
		kgo.RequestRetries(5),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &KafkaBackend{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

// Name returns the backend identifier
func (b *KafkaBackend) Name() string {
	return "kafka"
}

// Handle publishes the notification as JSON, keyed by its source
func (b *KafkaBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return NewBackendError("kafka", "marshal", false, err)
	}

	record := &kgo.Record{
		Topic: b.topic,
		Key:   []byte(n.Source),
		Value: payload,
	}

	if err := b.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return NewBackendError("kafka", "publish", true, err)
	}

	return nil
}

// Close closes the producer
func (b *KafkaBackend) Close() {
	b.client.Close()
}
