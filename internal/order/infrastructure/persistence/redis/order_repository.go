package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/cache"
)

// OrderRedisRepository 订单读缓存，实现 domain.OrderCache
type OrderRedisRepository struct {
	cache  *cache.RedisCache
	prefix string
	ttl    time.Duration
}

// NewOrderRedisRepository 创建订单缓存
func NewOrderRedisRepository(c *cache.RedisCache) *OrderRedisRepository {
	return &OrderRedisRepository{
		cache:  c,
		prefix: "nanotrader:order:",
		ttl:    15 * time.Minute,
	}
}

func (r *OrderRedisRepository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil || order.IsTransient() {
		return nil
	}
	if err := r.cache.SetJSON(ctx, r.key(order.OrderID), order, r.ttl); err != nil {
		return fmt.Errorf("failed to cache order: %w", err)
	}
	return nil
}

func (r *OrderRedisRepository) Get(ctx context.Context, orderID uint) (*domain.Order, error) {
	var order domain.Order
	found, err := r.cache.GetJSON(ctx, r.key(orderID), &order)
	if err != nil {
		return nil, fmt.Errorf("failed to get order from redis: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &order, nil
}

func (r *OrderRedisRepository) Delete(ctx context.Context, orderID uint) error {
	return r.cache.Delete(ctx, r.key(orderID))
}

func (r *OrderRedisRepository) key(orderID uint) string {
	return r.prefix + strconv.FormatUint(uint64(orderID), 10)
}
