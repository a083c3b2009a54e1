package domain

import (
	"context"
)

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Save 保存订单，新订单由仓储分配 OrderID
	Save(ctx context.Context, order *Order) error
	// Get 根据订单 ID 获取订单，不存在时返回 nil, nil
	Get(ctx context.Context, orderID uint) (*Order, error)
	// List 按 OrderID 升序分页查询，结果永不为 nil
	List(ctx context.Context, offset, limit int) ([]*Order, error)
	// Count 订单总数
	Count(ctx context.Context) (int64, error)
}

// OrderCache 订单读缓存
type OrderCache interface {
	Save(ctx context.Context, order *Order) error
	Get(ctx context.Context, orderID uint) (*Order, error)
	Delete(ctx context.Context, orderID uint) error
}
