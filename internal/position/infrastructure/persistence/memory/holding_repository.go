// Package memory 持仓仓储的内存实现
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wyfcoding/nanotrader/internal/position/domain"
)

var _ domain.HoldingRepository = (*HoldingRepository)(nil)

// HoldingRepository 按插入顺序保存持仓
type HoldingRepository struct {
	mu       sync.RWMutex
	holdings []*domain.Holding
	index    map[uint]int
	nextID   uint
}

// NewHoldingRepository 创建空仓储
func NewHoldingRepository() *HoldingRepository {
	return &HoldingRepository{index: make(map[uint]int), nextID: 1}
}

func (r *HoldingRepository) Save(_ context.Context, holding *domain.Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if holding.HoldingID == 0 {
		holding.HoldingID = r.nextID
		r.nextID++
		holding.CreatedAt = now
	}
	holding.UpdatedAt = now

	stored := *holding
	if i, ok := r.index[holding.HoldingID]; ok {
		r.holdings[i] = &stored
		return nil
	}
	r.index[holding.HoldingID] = len(r.holdings)
	r.holdings = append(r.holdings, &stored)
	if holding.HoldingID >= r.nextID {
		r.nextID = holding.HoldingID + 1
	}
	return nil
}

func (r *HoldingRepository) Get(_ context.Context, holdingID uint) (*domain.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[holdingID]
	if !ok {
		return nil, nil
	}
	h := *r.holdings[i]
	return &h, nil
}

func (r *HoldingRepository) List(_ context.Context, offset, limit int) ([]*domain.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Holding, 0)
	for i := max(offset, 0); i < len(r.holdings) && len(out) < limit; i++ {
		h := *r.holdings[i]
		out = append(out, &h)
	}
	return out, nil
}
