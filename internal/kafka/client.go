package kafka

import (
	"time"

	"github.com/quantarc/option-engine/pkg/utils/errors"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

// Config holds connection options shared by producers and consumers.
type Config struct {
	Brokers      []string
	GroupID      string
	MinBytes     int
	MaxBytes     int
	MaxWait      time.Duration
	BatchTimeout time.Duration
}

// DefaultConfig returns a config suitable for local development.
func DefaultConfig() *Config {
	return &Config{
		Brokers:      []string{"localhost:9092"},
		GroupID:      "option-engine",
		MinBytes:     1,
		MaxBytes:     10e6,
		MaxWait:      500 * time.Millisecond,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// Client is a factory for producers and consumers sharing one broker
// configuration.
type Client struct {
	config *Config
	log    *logger.Logger
}

// NewClient creates a new Kafka client.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.Brokers) == 0 {
		return nil, errors.InvalidArgument("at least one kafka broker is required")
	}
	if config.MaxBytes <= 0 {
		config.MaxBytes = 10e6
	}
	if config.MaxWait <= 0 {
		config.MaxWait = 500 * time.Millisecond
	}

	return &Client{
		config: config,
		log:    logger.GetLogger("kafka.client"),
	}, nil
}
