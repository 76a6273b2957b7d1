package kafka

import (
	"os"
	"strings"
)

// Defaults used when neither the environment nor the configuration names a
// value.
const (
	DefaultBroker        = "localhost:9092"
	DefaultTopic         = "annotator.notifications"
	DefaultConsumerGroup = "annotator-notifiers"
)

// GetBrokers returns the Kafka/Redpanda broker addresses.
// It checks ANNOTATOR_KAFKA_BROKERS (comma-separated) first, then falls back
// to configured, then the default.
func GetBrokers(configured []string) []string {
	if env := os.Getenv("ANNOTATOR_KAFKA_BROKERS"); env != "" {
		var brokers []string
		for _, b := range strings.Split(env, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		if len(brokers) > 0 {
			return brokers
		}
	}

	if len(configured) > 0 {
		return configured
	}

	return []string{DefaultBroker}
}

// GetTopic returns the notification topic name.
// It checks ANNOTATOR_KAFKA_TOPIC first, then falls back to configured, then
// the default.
func GetTopic(configured string) string {
	return firstNonEmpty(os.Getenv("ANNOTATOR_KAFKA_TOPIC"), configured, DefaultTopic)
}

// GetConsumerGroup returns the consumer group of notification relays.
// It checks ANNOTATOR_KAFKA_CONSUMER_GROUP first, then falls back to
// configured, then the default.
func GetConsumerGroup(configured string) string {
	return firstNonEmpty(os.Getenv("ANNOTATOR_KAFKA_CONSUMER_GROUP"), configured, DefaultConsumerGroup)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
