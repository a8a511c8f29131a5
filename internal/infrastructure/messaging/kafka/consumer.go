package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// Handler processes one decoded event envelope. Returning an error sends
// the raw message to the dead-letter topic instead of blocking the group.
type Handler func(ctx context.Context, envelope *EventEnvelope) error

// ConsumerConfig holds configuration for a consumer group.
type ConsumerConfig struct {
	Brokers        []string      `mapstructure:"brokers" yaml:"brokers"`
	GroupID        string        `mapstructure:"group_id" yaml:"group_id"`
	Topics         []string      `mapstructure:"topics" yaml:"topics"`
	MinBytes       int           `mapstructure:"min_bytes" yaml:"min_bytes"`
	MaxBytes       int           `mapstructure:"max_bytes" yaml:"max_bytes"`
	CommitInterval time.Duration `mapstructure:"commit_interval" yaml:"commit_interval"`
}

// reader abstracts kafka.Reader for testing.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads screening events in a consumer group and dispatches them
// to per-topic handlers.
type Consumer struct {
	reader     reader
	deadLetter *Producer
	handlers   map[string]Handler
	logger     logging.Logger
}

// NewConsumer creates a consumer group over cfg.Topics. deadLetter may be
// nil, in which case failed messages are logged and skipped.
func NewConsumer(cfg ConsumerConfig, deadLetter *Producer, log logging.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.InvalidParam("at least one kafka broker is required")
	}
	if cfg.GroupID == "" {
		return nil, errors.InvalidParam("consumer group id is required")
	}
	if len(cfg.Topics) == 0 {
		return nil, errors.InvalidParam("at least one topic is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	if cfg.MinBytes == 0 {
		cfg.MinBytes = 1
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 10 * 1024 * 1024
	}
	if cfg.CommitInterval == 0 {
		cfg.CommitInterval = time.Second
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		GroupTopics:    cfg.Topics,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		CommitInterval: cfg.CommitInterval,
	})

	return &Consumer{
		reader:     r,
		deadLetter: deadLetter,
		handlers:   map[string]Handler{},
		logger:     log.Named("kafka.consumer"),
	}, nil
}

// On registers the handler for a topic. Must be called before Run.
func (c *Consumer) On(topic string, h Handler) {
	c.handlers[topic] = h
}

// Run consumes messages until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, errors.CodeMessageQueueError, "failed to fetch message")
		}

		c.dispatch(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit message offset",
				logging.String("topic", msg.Topic), logging.Err(err))
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message) {
	handler, ok := c.handlers[msg.Topic]
	if !ok {
		c.logger.Warn("no handler registered for topic", logging.String("topic", msg.Topic))
		return
	}

	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		c.logger.Error("failed to decode event envelope",
			logging.String("topic", msg.Topic), logging.Err(err))
		c.sendToDeadLetter(ctx, msg)
		return
	}

	if err := handler(ctx, &envelope); err != nil {
		c.logger.Error("event handler failed",
			logging.String("topic", msg.Topic),
			logging.String("event_id", envelope.EventID),
			logging.Err(err),
		)
		c.sendToDeadLetter(ctx, msg)
	}
}

func (c *Consumer) sendToDeadLetter(ctx context.Context, msg kafka.Message) {
	if c.deadLetter == nil {
		return
	}
	envelope, err := NewEventEnvelope("dead_letter", "screening-consumer", map[string]string{
		"original_topic": msg.Topic,
		"original_value": string(msg.Value),
	})
	if err != nil {
		return
	}
	if err := c.deadLetter.Publish(ctx, TopicDeadLetter, string(msg.Key), envelope); err != nil {
		c.logger.Error("failed to publish to dead letter topic", logging.Err(err))
	}
}

// Close shuts the consumer down.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
