package domain

import (
	"time"
)

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID     uint      `json:"order_id"`
	AccountID   uint      `json:"account_id"`
	QuoteSymbol string    `json:"quote_symbol"`
	OrderType   string    `json:"order_type"`
	OrderStatus string    `json:"order_status"`
	Price       string    `json:"price"`
	Quantity    string    `json:"quantity"`
	OccurredOn  time.Time `json:"occurred_on"`
}

// NewOrderCreatedEvent 由已持久化的订单构造事件
func NewOrderCreatedEvent(o *Order, at time.Time) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:     o.OrderID,
		AccountID:   o.AccountID,
		QuoteSymbol: o.QuoteSymbol,
		OrderType:   o.OrderType,
		OrderStatus: o.OrderStatus,
		Price:       o.Price.String(),
		Quantity:    o.Quantity.String(),
		OccurredOn:  at,
	}
}
