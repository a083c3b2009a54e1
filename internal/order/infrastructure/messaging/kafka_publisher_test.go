package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/nanotrader/internal/order/domain"
)

type sentMessage struct {
	topic string
	key   string
	value interface{}
}

type fakeSender struct {
	sent []sentMessage
}

func (f *fakeSender) SendMessage(_ context.Context, topic, key string, value interface{}) error {
	f.sent = append(f.sent, sentMessage{topic: topic, key: key, value: value})
	return nil
}

func TestPublishOrderCreated(t *testing.T) {
	sender := &fakeSender{}
	pub := NewKafkaEventPublisher(sender, "nanotrader.order.created")

	event := domain.OrderCreatedEvent{OrderID: 17, QuoteSymbol: "GOOG", OccurredOn: time.Now()}
	require.NoError(t, pub.PublishOrderCreated(context.Background(), event))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "nanotrader.order.created", sender.sent[0].topic)
	assert.Equal(t, "17", sender.sent[0].key)
	assert.Equal(t, event, sender.sent[0].value)
}

func TestNopPublisher(t *testing.T) {
	var pub domain.EventPublisher = NopEventPublisher{}
	assert.NoError(t, pub.PublishOrderCreated(context.Background(), domain.OrderCreatedEvent{}))
}
