// Package application 行情用例
package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	"github.com/wyfcoding/nanotrader/pkg/clock"
	"github.com/wyfcoding/nanotrader/pkg/logger"
)

// QuoteService 实时行情服务
type QuoteService struct {
	repo  domain.QuoteRepository
	clock clock.Clock
}

// NewQuoteService 创建行情服务
func NewQuoteService(repo domain.QuoteRepository) *QuoteService {
	return &QuoteService{repo: repo, clock: clock.NewSystem()}
}

// FindBySymbol 查询最新行情，不存在时返回 domain.ErrQuoteNotFound
func (s *QuoteService) FindBySymbol(ctx context.Context, symbol string) (*domain.Quote, error) {
	quote, err := s.repo.GetLatest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, fmt.Errorf("symbol %q: %w", symbol, domain.ErrQuoteNotFound)
	}
	return quote, nil
}

// SaveQuote 保存行情
func (s *QuoteService) SaveQuote(ctx context.Context, quote *domain.Quote) error {
	if quote == nil || quote.Symbol == "" {
		return fmt.Errorf("quote symbol is required")
	}
	quote.UpdatedAt = s.clock.Now()
	return s.repo.Save(ctx, quote)
}

// EnsureQuote 保证 symbol 存在，缺失时写入一条默认行情
func (s *QuoteService) EnsureQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	quote, err := s.repo.GetLatest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if quote != nil {
		return quote, nil
	}

	price := decimal.NewFromInt(100)
	quote = &domain.Quote{
		Symbol:      symbol,
		CompanyName: symbol,
		Price:       price,
		Open:        price,
		Low:         price,
		High:        price,
		Change:      decimal.Zero,
		Volume:      decimal.Zero,
	}
	if err := s.SaveQuote(ctx, quote); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Default quote created", "symbol", symbol)
	return quote, nil
}
