package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultDLQTopic receives notifications no backend could deliver.
const DefaultDLQTopic = "annotator.notifications.dlq"

// DLQMessage represents a notification in the dead letter queue
type DLQMessage struct {
	// Original notification that failed
	Notification *Notification `json:"notification"`

	// Failure metadata
	FailureReason string    `json:"failure_reason"` // Last error message
	FailedAt      time.Time `json:"failed_at"`      // When delivery gave up
	DLQTimestamp  time.Time `json:"dlq_timestamp"`  // When added to DLQ

	MessageID        string           `json:"message_id"`
	NotificationType NotificationType `json:"notification_type"`
}

// NewDLQMessage wraps a failed notification.
func NewDLQMessage(n *Notification, failureReason string, failedAt time.Time) *DLQMessage {
	return &DLQMessage{
		Notification:     n,
		FailureReason:    failureReason,
		FailedAt:         failedAt,
		DLQTimestamp:     time.Now(),
		MessageID:        n.ID,
		NotificationType: n.Type,
	}
}

// Record encodes the message for topic, keyed by notification ID for
// consistent partitioning.
func (m *DLQMessage) Record(topic string) (*kgo.Record, error) {
	value, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal DLQ message: %w", err)
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(m.MessageID),
		Value: value,
	}, nil
}

// DLQPublisher publishes failed notifications to the dead letter queue
type DLQPublisher struct {
	client *kgo.Client
	topic  string
}

// DLQPublisherConfig holds DLQ publisher configuration
type DLQPublisherConfig struct {
	Brokers []string
	Topic   string // defaults to DefaultDLQTopic
}

// NewDLQPublisher creates a new DLQ publisher
func NewDLQPublisher(cfg DLQPublisherConfig) (*DLQPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultDLQTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		// DLQ messages should never be lost
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.GzipCompression()),
		kgo.RequestRetries(10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create DLQ kafka client: %w", err)
	}

	return &DLQPublisher{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

// Publish sends a failed notification to the DLQ
func (p *DLQPublisher) Publish(ctx context.Context, n *Notification, failureReason string) error {
	record, err := NewDLQMessage(n, failureReason, time.Now()).Record(p.topic)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to publish to DLQ: %w", err)
	}
	return nil
}

// Close closes the DLQ publisher
func (p *DLQPublisher) Close() {
	p.client.Close()
}
