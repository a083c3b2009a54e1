// Package application 订单服务的用例逻辑
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/clock"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/metrics"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

const entityOrder = "order"

// OrderService 订单应用服务
type OrderService struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
	validator *validation.Validator
	metrics   *metrics.Metrics
	clock     clock.Clock
}

// NewOrderService 创建订单应用服务，m 可以为 nil
func NewOrderService(repo domain.OrderRepository, publisher domain.EventPublisher, m *metrics.Metrics) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
		validator: validation.New(),
		metrics:   m,
		clock:     clock.NewSystem(),
	}
}

// SaveOrder 校验并保存订单
// 用例流程：
// 1. 字段约束校验，失败返回 *validation.ValidationError
// 2. 保存到仓储（新订单获得 OrderID）
// 3. 发布订单创建事件，发布失败只记录日志
func (s *OrderService) SaveOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	if err := s.validator.Struct(entityOrder, order); err != nil {
		s.metrics.RecordValidationFailure(entityOrder)
		logger.Warn(ctx, "Order failed validation", "order_status", order.OrderStatus, "error", err)
		return err
	}

	created := order.IsTransient()
	if err := s.repo.Save(ctx, order); err != nil {
		return err
	}
	s.metrics.RecordSaved(entityOrder)

	if created {
		event := domain.NewOrderCreatedEvent(order, s.clock.Now())
		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			logger.Warn(ctx, "Failed to publish order created event", "order_id", order.OrderID, "error", err)
		}
	}

	logger.Debug(ctx, "Order saved", "order_id", order.OrderID, "created", created)
	return nil
}

// FindOrder 根据 ID 获取订单，不存在时返回 domain.ErrOrderNotFound
func (s *OrderService) FindOrder(ctx context.Context, orderID uint) (*domain.Order, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrOrderNotFound)
	}
	return order, nil
}

// FindOrderEntries 返回区间 [from, to) 内的订单，按 OrderID 升序
func (s *OrderService) FindOrderEntries(ctx context.Context, from, to int) ([]*domain.Order, error) {
	if from < 0 || to < from {
		return nil, fmt.Errorf("invalid range [%d, %d)", from, to)
	}
	orders, err := s.repo.List(ctx, from, to-from)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CountOrders 订单总数
func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
