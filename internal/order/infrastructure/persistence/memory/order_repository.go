// Package memory 订单仓储的内存实现
//
// 供测试以及 database.driver 为 memory 时的 fixtures 命令使用，进程退出后数据丢失。
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wyfcoding/nanotrader/internal/order/domain"
)

var _ domain.OrderRepository = (*OrderRepository)(nil)

// OrderRepository 按插入顺序保存订单，ID 从 1 开始递增
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	index  map[uint]int
	nextID uint
}

// NewOrderRepository 创建空仓储
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		index:  make(map[uint]int),
		nextID: 1,
	}
}

func (r *OrderRepository) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if order.OrderID == 0 {
		order.OrderID = r.nextID
		r.nextID++
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	stored := order.Clone()
	if i, ok := r.index[order.OrderID]; ok {
		r.orders[i] = stored
		return nil
	}
	r.index[order.OrderID] = len(r.orders)
	r.orders = append(r.orders, stored)
	if order.OrderID >= r.nextID {
		r.nextID = order.OrderID + 1
	}
	return nil
}

func (r *OrderRepository) Get(_ context.Context, orderID uint) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[orderID]
	if !ok {
		return nil, nil
	}
	return r.orders[i].Clone(), nil
}

func (r *OrderRepository) List(_ context.Context, offset, limit int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0)
	if offset < 0 {
		offset = 0
	}
	for i := offset; i < len(r.orders) && len(out) < limit; i++ {
		out = append(out, r.orders[i].Clone())
	}
	return out, nil
}

func (r *OrderRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}
