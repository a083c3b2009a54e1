// Package mysql 提供了订单仓储接口的 GORM 实现（MySQL / PostgreSQL 通用）。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"gorm.io/gorm"
)

// orderRepositoryImpl 是 domain.OrderRepository 接口的 GORM 实现。
type orderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

// AutoMigrate 创建或更新 orders 表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderModel{})
}

// Save 实现 domain.OrderRepository.Save
func (r *orderRepositoryImpl) Save(ctx context.Context, order *domain.Order) error {
	model := toOrderModel(order)

	var err error
	if model.OrderID == 0 {
		err = r.db.WithContext(ctx).Create(model).Error
	} else {
		err = r.db.WithContext(ctx).Save(model).Error
	}
	if err != nil {
		logger.Error(ctx, "order_repository.save failed", "order_id", order.OrderID, "error", err)
		return fmt.Errorf("failed to save order: %w", err)
	}

	order.OrderID = model.OrderID
	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt
	return nil
}

// Get 实现 domain.OrderRepository.Get
func (r *orderRepositoryImpl) Get(ctx context.Context, orderID uint) (*domain.Order, error) {
	var model OrderModel
	if err := r.db.WithContext(ctx).First(&model, "orderid = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "order_repository.get failed", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return toOrder(&model), nil
}

// List 实现 domain.OrderRepository.List
func (r *orderRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.Order, error) {
	var models []OrderModel
	if err := r.db.WithContext(ctx).Order("orderid asc").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		logger.Error(ctx, "order_repository.list failed", "offset", offset, "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*domain.Order, len(models))
	for i := range models {
		orders[i] = toOrder(&models[i])
	}
	return orders, nil
}

// Count 实现 domain.OrderRepository.Count
func (r *orderRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&OrderModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}
