package messaging

import (
	"context"
	"strconv"

	"github.com/wyfcoding/nanotrader/internal/order/domain"
)

// MessageSender 是 mq.KafkaProducer 的发送能力
type MessageSender interface {
	SendMessage(ctx context.Context, topic, key string, value interface{}) error
}

// KafkaEventPublisher 把订单事件写入 Kafka，以订单 ID 作为分区键
type KafkaEventPublisher struct {
	sender MessageSender
	topic  string
}

// NewKafkaEventPublisher 创建 Kafka 事件发布者
func NewKafkaEventPublisher(sender MessageSender, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{sender: sender, topic: topic}
}

// PublishOrderCreated 发布订单创建事件
func (p *KafkaEventPublisher) PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	return p.sender.SendMessage(ctx, p.topic, strconv.FormatUint(uint64(event.OrderID), 10), event)
}

// NopEventPublisher 未配置 Kafka 时使用，丢弃所有事件
type NopEventPublisher struct{}

// PublishOrderCreated 什么也不做
func (NopEventPublisher) PublishOrderCreated(context.Context, domain.OrderCreatedEvent) error {
	return nil
}
