// Package persistence 组合 MySQL 持久化与 Redis 缓存
package persistence

import (
	"context"

	"github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
)

type compositeQuoteRepository struct {
	mysql domain.QuoteRepository
	redis domain.QuoteRepository
}

// NewCompositeQuoteRepository 创建一个组合仓储，支持 MySQL 持久化和 Redis 缓存。
func NewCompositeQuoteRepository(mysql, redis domain.QuoteRepository) domain.QuoteRepository {
	return &compositeQuoteRepository{mysql: mysql, redis: redis}
}

func (r *compositeQuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	// 双写：先写 MySQL (持久化)，再写 Redis (缓存)
	if err := r.mysql.Save(ctx, quote); err != nil {
		return err
	}
	if err := r.redis.Save(ctx, quote); err != nil {
		logger.Warn(ctx, "failed to cache quote", "symbol", quote.Symbol, "error", err)
	}
	return nil
}

func (r *compositeQuoteRepository) GetLatest(ctx context.Context, symbol string) (*domain.Quote, error) {
	// 先读 Redis
	quote, err := r.redis.GetLatest(ctx, symbol)
	if err == nil && quote != nil {
		return quote, nil
	}
	if err != nil {
		logger.Warn(ctx, "quote cache read failed", "symbol", symbol, "error", err)
	}

	// Redis 不存在则读 MySQL，并回填缓存
	quote, err = r.mysql.GetLatest(ctx, symbol)
	if err != nil || quote == nil {
		return quote, err
	}
	if err := r.redis.Save(ctx, quote); err != nil {
		logger.Warn(ctx, "failed to backfill quote cache", "symbol", symbol, "error", err)
	}
	return quote, nil
}
