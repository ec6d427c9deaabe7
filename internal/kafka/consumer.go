package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/quantarc/option-engine/pkg/utils/errors"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

// Message is a consumed record.
type Message struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
}

// Consumer reads messages from a single topic within a consumer group.
type Consumer struct {
	reader *kafka.Reader
	log    *logger.Logger
}

// NewConsumer creates a consumer for the given topic. An empty groupID
// falls back to the client's group.
func (c *Client) NewConsumer(topic, groupID string) (*Consumer, error) {
	if topic == "" {
		return nil, errors.InvalidArgument("consumer topic must not be empty")
	}
	if groupID == "" {
		groupID = c.config.GroupID
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.config.Brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: c.config.MinBytes,
		MaxBytes: c.config.MaxBytes,
		MaxWait:  c.config.MaxWait,
	})

	return &Consumer{
		reader: reader,
		log:    logger.GetLogger("kafka.consumer").With("topic", topic, "group", groupID),
	}, nil
}

// ConsumeMessage blocks until a message is available or ctx is cancelled.
// The group offset is committed automatically on read.
func (c *Consumer) ConsumeMessage(ctx context.Context) (*Message, error) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Errorf("Failed to read message: %v", err)
		return nil, errors.Wrap(err, "failed to read message")
	}

	return &Message{
		Key:       m.Key,
		Value:     m.Value,
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
	}, nil
}

// Close releases the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
