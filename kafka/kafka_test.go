package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishStampsEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event PaymentAppliedEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypePaymentApplied || event.EventID == "" {
			return errors.New("event not stamped")
		}
		if !event.Amount.Equal(decimal.NewFromInt(250)) {
			return errors.New("amount lost in transit")
		}
		return nil
	})

	fixed := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	publisher := NewPublisherWithProducer(producer)
	publisher.now = func() time.Time { return fixed }

	event := &PaymentAppliedEvent{CustomerID: 4, Amount: decimal.NewFromInt(250), Method: "cash"}
	require.NoError(t, publisher.Publish(context.Background(), event))
	assert.Equal(t, fixed, event.Timestamp)
	assert.Equal(t, "customer_4", event.Key())

	require.NoError(t, publisher.Close())
}

func TestPublishFailureIsReturned(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := NewPublisherWithProducer(producer).Publish(context.Background(), &StockLowEvent{ProductID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestNilPublisherDropsEvents(t *testing.T) {
	var publisher *Publisher
	assert.NoError(t, publisher.Publish(context.Background(), &SaleRecordedEvent{SaleID: 1}))
	assert.NoError(t, publisher.Close())
}

func TestDispatchDecodesRegisteredType(t *testing.T) {
	consumer := newConsumer(nil, "test", Topics)

	var got StockLowEvent
	Register(consumer, EventTypeStockLow, func(_ context.Context, e StockLowEvent) error {
		got = e
		return nil
	})

	payload, err := json.Marshal(&StockLowEvent{ProductID: 9, ProductName: "Paneer", Quantity: decimal.NewFromInt(2), Threshold: 10})
	require.NoError(t, err)

	err = consumer.Dispatch(context.Background(), &sarama.ConsumerMessage{
		Topic:   TopicStockLow,
		Value:   payload,
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeStockLow)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Paneer", got.ProductName)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(2)))

	err = consumer.Dispatch(context.Background(), &sarama.ConsumerMessage{
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte("unknown")}},
	})
	assert.ErrorIs(t, err, ErrNoHandler)

	err = consumer.Dispatch(context.Background(), &sarama.ConsumerMessage{
		Value:   []byte("{"),
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeStockLow)}},
	})
	assert.Error(t, err)
}
