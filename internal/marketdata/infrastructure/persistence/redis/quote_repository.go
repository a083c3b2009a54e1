// Package redis 行情的 Redis 读模型
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	"github.com/wyfcoding/nanotrader/pkg/cache"
)

// quoteTTL 行情每天至少刷新一次，过期后回落到数据库
const quoteTTL = 24 * time.Hour

var errEmptySymbol = errors.New("quote symbol is empty")

// QuoteRedisRepository 按代码缓存最新一条行情，实现 domain.QuoteRepository
type QuoteRedisRepository struct {
	cache  *cache.RedisCache
	prefix string
}

// NewQuoteRedisRepository 创建行情缓存
func NewQuoteRedisRepository(c *cache.RedisCache) *QuoteRedisRepository {
	return &QuoteRedisRepository{cache: c, prefix: "nanotrader:quote:"}
}

// Save 覆盖该代码的缓存，nil 忽略
func (r *QuoteRedisRepository) Save(ctx context.Context, quote *domain.Quote) error {
	if quote == nil {
		return nil
	}
	if quote.Symbol == "" {
		return errEmptySymbol
	}
	if err := r.cache.SetJSON(ctx, r.key(quote.Symbol), quote, quoteTTL); err != nil {
		return fmt.Errorf("failed to cache quote %s: %w", quote.Symbol, err)
	}
	return nil
}

// GetLatest 未命中返回 nil, nil
func (r *QuoteRedisRepository) GetLatest(ctx context.Context, symbol string) (*domain.Quote, error) {
	var quote domain.Quote
	found, err := r.cache.GetJSON(ctx, r.key(symbol), &quote)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote %s from redis: %w", symbol, err)
	}
	if !found {
		return nil, nil
	}
	return &quote, nil
}

func (r *QuoteRedisRepository) key(symbol string) string {
	return r.prefix + symbol
}
