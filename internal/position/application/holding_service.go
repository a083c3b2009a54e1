// Package application 持仓用例
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/nanotrader/internal/position/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/metrics"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

const entityHolding = "holding"

// HoldingService 持仓应用服务
type HoldingService struct {
	repo      domain.HoldingRepository
	validator *validation.Validator
	metrics   *metrics.Metrics
}

// NewHoldingService 创建持仓服务，m 可以为 nil
func NewHoldingService(repo domain.HoldingRepository, m *metrics.Metrics) *HoldingService {
	return &HoldingService{
		repo:      repo,
		validator: validation.New(),
		metrics:   m,
	}
}

// SaveHolding 校验并保存持仓
func (s *HoldingService) SaveHolding(ctx context.Context, holding *domain.Holding) error {
	if holding == nil {
		return fmt.Errorf("holding is nil")
	}
	if err := s.validator.Struct(entityHolding, holding); err != nil {
		s.metrics.RecordValidationFailure(entityHolding)
		logger.Warn(ctx, "Holding failed validation", "account_id", holding.AccountID, "error", err)
		return err
	}
	if err := s.repo.Save(ctx, holding); err != nil {
		return err
	}
	s.metrics.RecordSaved(entityHolding)
	return nil
}

// FindHolding 不存在时返回 domain.ErrHoldingNotFound
func (s *HoldingService) FindHolding(ctx context.Context, holdingID uint) (*domain.Holding, error) {
	holding, err := s.repo.Get(ctx, holdingID)
	if err != nil {
		return nil, err
	}
	if holding == nil {
		return nil, fmt.Errorf("holding %d: %w", holdingID, domain.ErrHoldingNotFound)
	}
	return holding, nil
}

// FindHoldingEntries 返回区间 [from, to) 内的持仓
func (s *HoldingService) FindHoldingEntries(ctx context.Context, from, to int) ([]*domain.Holding, error) {
	if from < 0 || to < from {
		return nil, fmt.Errorf("invalid range [%d, %d)", from, to)
	}
	return s.repo.List(ctx, from, to-from)
}
