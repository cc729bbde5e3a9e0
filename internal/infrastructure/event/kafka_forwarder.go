package event

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Kafka record header keys
const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
	HeaderShopID    = "shop_id"
)

// NewSaramaConfig creates the producer configuration for event forwarding
func NewSaramaConfig(cfg config.KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID
	saramaConfig.Version = sarama.V3_3_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Retry.Max = cfg.MaxRetries
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	return saramaConfig
}

// NewSyncProducer connects a sync producer to the configured brokers
func NewSyncProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// KafkaForwarder is an event handler that forwards customer events to a
// Kafka topic. Records are keyed by platform:externalId so every change of
// one customer identity lands on the same partition in order.
type KafkaForwarder struct {
	producer   sarama.SyncProducer
	serializer *EventSerializer
	topic      string
	logger     *zap.Logger
}

// NewKafkaForwarder creates a new forwarder writing to topic
func NewKafkaForwarder(producer sarama.SyncProducer, serializer *EventSerializer, topic string, logger *zap.Logger) *KafkaForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaForwarder{
		producer:   producer,
		serializer: serializer,
		topic:      topic,
		logger:     logger,
	}
}

// EventTypes returns the customer event types
func (f *KafkaForwarder) EventTypes() []string {
	return customer.EventTypes()
}

// Handle sends one event to Kafka
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	value, err := f.serializer.Serialize(event)
	if err != nil {
		return err
	}

	message := &sarama.ProducerMessage{
		Topic: f.topic,
		Key:   sarama.StringEncoder(recordKey(event)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(event.EventType())},
			{Key: []byte(HeaderEventID), Value: []byte(event.EventID().String())},
			{Key: []byte(HeaderShopID), Value: []byte(event.ShopID())},
		},
		Timestamp: time.Now(),
	}

	partition, offset, err := f.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to forward %s event: %w", event.EventType(), err)
	}

	f.logger.Debug("Forwarded event to Kafka",
		zap.String("topic", f.topic),
		zap.String("event_type", event.EventType()),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

// Close closes the producer
func (f *KafkaForwarder) Close() error {
	return f.producer.Close()
}

func recordKey(event shared.DomainEvent) string {
	if e, ok := event.(*customer.CustomerEvent); ok {
		return e.Identity().String()
	}
	return event.AggregateID()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
