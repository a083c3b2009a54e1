// Package memory 行情仓储的内存实现
package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/nanotrader/internal/marketdata/domain"
)

var _ domain.QuoteRepository = (*QuoteRepository)(nil)

// QuoteRepository 以 Symbol 为键
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]domain.Quote
}

// NewQuoteRepository 创建空仓储
func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string]domain.Quote)}
}

func (r *QuoteRepository) Save(_ context.Context, quote *domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[quote.Symbol] = *quote
	return nil
}

func (r *QuoteRepository) GetLatest(_ context.Context, symbol string) (*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[symbol]
	if !ok {
		return nil, nil
	}
	return &q, nil
}
