package event

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopcrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaForwarder_Handle(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	serializer := NewEventSerializer()
	forwarder := NewKafkaForwarder(producer, serializer, "shopcrm.customer-events", nil)
	event := newCustomerEvent(t)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "shopcrm.customer-events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "zalo:u1" {
			return errors.New("unexpected key " + string(key))
		}
		if len(msg.Headers) != 3 || string(msg.Headers[0].Value) != "customer.created" {
			return errors.New("unexpected headers")
		}
		return nil
	})

	require.NoError(t, forwarder.Handle(context.Background(), event))
}

func TestKafkaForwarder_Handle_ProducerError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	forwarder := NewKafkaForwarder(producer, NewEventSerializer(), "topic", nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := forwarder.Handle(context.Background(), newCustomerEvent(t))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestKafkaForwarder_ThroughBus(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	bus := startedBus(t)
	bus.Subscribe(NewKafkaForwarder(producer, NewEventSerializer(), "topic", nil))

	producer.ExpectSendMessageAndSucceed()
	require.NoError(t, bus.Publish(context.Background(), newCustomerEvent(t)))

	// Non customer events are not forwarded
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("shop.created", "S1")))
}

func TestNewSaramaConfig(t *testing.T) {
	cfg := NewSaramaConfig(config.KafkaConfig{ClientID: "shopcrm", MaxRetries: 5})

	assert.Equal(t, "shopcrm", cfg.ClientID)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, 5, cfg.Producer.Retry.Max)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.NoError(t, cfg.Validate())
}
