package persistence

import (
	"context"

	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
)

type compositeOrderRepository struct {
	store domain.OrderRepository
	cache domain.OrderCache
}

// NewCompositeOrderRepository 创建一个组合仓储：数据库持久化 + Redis 读缓存。
// 缓存失败只记录日志，不影响主流程。
func NewCompositeOrderRepository(store domain.OrderRepository, cache domain.OrderCache) domain.OrderRepository {
	return &compositeOrderRepository{store: store, cache: cache}
}

func (r *compositeOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	// 先写数据库，再刷新缓存
	if err := r.store.Save(ctx, order); err != nil {
		return err
	}
	if err := r.cache.Save(ctx, order); err != nil {
		logger.Warn(ctx, "failed to refresh order cache", "order_id", order.OrderID, "error", err)
	}
	return nil
}

func (r *compositeOrderRepository) Get(ctx context.Context, orderID uint) (*domain.Order, error) {
	order, err := r.cache.Get(ctx, orderID)
	if err == nil && order != nil {
		return order, nil
	}
	if err != nil {
		logger.Warn(ctx, "order cache read failed", "order_id", orderID, "error", err)
	}

	order, err = r.store.Get(ctx, orderID)
	if err != nil || order == nil {
		return order, err
	}
	if err := r.cache.Save(ctx, order); err != nil {
		logger.Warn(ctx, "failed to backfill order cache", "order_id", orderID, "error", err)
	}
	return order, nil
}

func (r *compositeOrderRepository) List(ctx context.Context, offset, limit int) ([]*domain.Order, error) {
	return r.store.List(ctx, offset, limit)
}

func (r *compositeOrderRepository) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}
