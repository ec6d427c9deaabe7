package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/quantarc/option-engine/pkg/utils/errors"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

// Producer writes messages to a single topic.
type Producer struct {
	writer *kafka.Writer
	topic  string
	log    *logger.Logger
}

// NewProducer creates a producer for the given topic.
func (c *Client) NewProducer(topic string) (*Producer, error) {
	if topic == "" {
		return nil, errors.InvalidArgument("producer topic must not be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(c.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: c.config.BatchTimeout,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		log:    logger.GetLogger("kafka.producer").With("topic", topic),
	}, nil
}

// ProduceMessage writes one message to the topic.
func (p *Producer) ProduceMessage(ctx context.Context, key, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
	if err != nil {
		p.log.Errorf("Failed to produce message: %v", err)
		return errors.Wrapf(err, "failed to produce to %s", p.topic)
	}
	return nil
}

// ProduceJSON serializes value to JSON and writes it to the topic.
func (p *Producer) ProduceJSON(ctx context.Context, key []byte, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal message payload")
	}
	return p.ProduceMessage(ctx, key, payload)
}

// Close flushes pending writes and releases the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
