package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	"github.com/wyfcoding/nanotrader/pkg/cache"
)

func newTestRepo(t *testing.T) (*QuoteRedisRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewQuoteRedisRepository(cache.NewFromClient(client)), mr
}

func TestQuoteRedisRepository(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	missing, err := repo.GetLatest(ctx, "GOOG")
	require.NoError(t, err)
	assert.Nil(t, missing)

	q := &domain.Quote{Symbol: "GOOG", CompanyName: "Google", Price: decimal.RequireFromString("120.50")}
	require.NoError(t, repo.Save(ctx, q))
	assert.True(t, mr.Exists("nanotrader:quote:GOOG"))

	got, err := repo.GetLatest(ctx, "GOOG")
	require.NoError(t, err)
	assert.Equal(t, "Google", got.CompanyName)
	assert.True(t, got.Price.Equal(q.Price))

	require.NoError(t, repo.Save(ctx, nil))
	assert.ErrorIs(t, repo.Save(ctx, &domain.Quote{}), errEmptySymbol)
}

func TestQuoteRedisRepositoryExpiry(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Quote{Symbol: "VMW"}))
	assert.Equal(t, quoteTTL, mr.TTL("nanotrader:quote:VMW"))

	mr.FastForward(quoteTTL + time.Second)
	got, err := repo.GetLatest(ctx, "VMW")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuoteRedisRepositoryCorruptValue(t *testing.T) {
	repo, mr := newTestRepo(t)
	require.NoError(t, mr.Set("nanotrader:quote:GOOG", "{not json"))

	_, err := repo.GetLatest(context.Background(), "GOOG")
	assert.Error(t, err)
}
