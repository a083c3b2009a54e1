package domain

import "context"

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// PublishOrderCreated 发布订单创建事件
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}
