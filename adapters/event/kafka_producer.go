package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/internal/application/service"
	"github.com/khoahotran/notion-blog/internal/config"
	"github.com/khoahotran/notion-blog/pkg/logger"
	"github.com/khoahotran/notion-blog/pkg/metrics"
)

const (
	TopicSearchEvents = "search.events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	SearchEventsWriter messageWriter
	logger             logger.Logger
	metrics            *metrics.Metrics
}

// NewKafkaProducerClient builds an async producer. WriteMessages returns
// before the broker answers, so delivery failures are reported through the
// writer's completion callback (log + m) rather than to the caller.
func NewKafkaProducerClient(cfg config.Config, log logger.Logger, m *metrics.Metrics) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'search.events'; Async keeps the search request path from
	// waiting on broker acks.
	searchWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicSearchEvents,
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		AllowAutoTopicCreation: true,
	}

	client := &KafkaProducerClient{
		SearchEventsWriter: searchWriter,
		logger:             log,
		metrics:            m,
	}
	searchWriter.Completion = client.onCompletion

	log.Info("Initialize Kafka Producers successfully.")

	return client, nil
}

func (c *KafkaProducerClient) onCompletion(msgs []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, msg := range msgs {
		c.metrics.RecordPublishFailure()
		c.logger.Warn("Search event delivery failed", zap.Error(err), zap.String("event_id", string(msg.Key)))
	}
}

func (c *KafkaProducerClient) PublishSearchEvent(ctx context.Context, evt service.SearchEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal search event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(evt.ID.String()),
		Value: value,
	}
	if err := c.SearchEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write search event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.SearchEventsWriter != nil {
		c.SearchEventsWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}

var _ service.SearchEventPublisher = (*KafkaProducerClient)(nil)
