package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBrokers(t *testing.T) {
	t.Setenv("ANNOTATOR_KAFKA_BROKERS", "")
	assert.Equal(t, []string{DefaultBroker}, GetBrokers(nil))
	assert.Equal(t, []string{"kafka:9092"}, GetBrokers([]string{"kafka:9092"}))

	t.Setenv("ANNOTATOR_KAFKA_BROKERS", "a:9092, b:9092,")
	assert.Equal(t, []string{"a:9092", "b:9092"}, GetBrokers([]string{"kafka:9092"}))
}

func TestGetTopicAndConsumerGroup(t *testing.T) {
	t.Setenv("ANNOTATOR_KAFKA_TOPIC", "")
	t.Setenv("ANNOTATOR_KAFKA_CONSUMER_GROUP", "")

	assert.Equal(t, DefaultTopic, GetTopic(""))
	assert.Equal(t, "custom", GetTopic("custom"))
	assert.Equal(t, DefaultConsumerGroup, GetConsumerGroup(""))

	t.Setenv("ANNOTATOR_KAFKA_TOPIC", "from-env")
	t.Setenv("ANNOTATOR_KAFKA_CONSUMER_GROUP", "group-env")
	assert.Equal(t, "from-env", GetTopic("custom"))
	assert.Equal(t, "group-env", GetConsumerGroup("custom"))
}
