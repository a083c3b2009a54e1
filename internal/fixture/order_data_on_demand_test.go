package fixture

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	marketdomain "github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	orderdomain "github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

// nilEntriesStore 违反约定，区间查询返回 nil
type nilEntriesStore struct {
	OrderStore
}

func (nilEntriesStore) FindOrderEntries(context.Context, int, int) ([]*orderdomain.Order, error) {
	return nil, nil
}

// corruptingStore 在保存指定 index 的订单前把它改成非法值
type corruptingStore struct {
	OrderStore
	failIndex int
}

func (s corruptingStore) SaveOrder(ctx context.Context, order *orderdomain.Order) error {
	if order.OrderStatus == fmt.Sprintf("orderstatus_%d", s.failIndex) {
		order.OrderStatus = strings.Repeat("x", orderdomain.MaxTextLength+1)
	}
	return s.OrderStore.SaveOrder(ctx, order)
}

type missingQuotes struct{}

func (missingQuotes) FindBySymbol(_ context.Context, symbol string) (*marketdomain.Quote, error) {
	return nil, fmt.Errorf("symbol %q: %w", symbol, marketdomain.ErrQuoteNotFound)
}

func TestMoneySettersClamp(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil)

	tests := []struct {
		index int
		want  decimal.Decimal
	}{
		{0, decimal.Zero},
		{42, decimal.NewFromInt(42)},
		{999999999999, decimal.NewFromInt(999999999999)},
		{1000000000000, orderdomain.MaxMoney},
		{math.MaxInt, orderdomain.MaxMoney},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.index), func(t *testing.T) {
			obj := &orderdomain.Order{}
			dod.SetOrderFee(obj, tt.index)
			dod.SetPrice(obj, tt.index)
			dod.SetQuantity(obj, tt.index)

			assert.True(t, obj.OrderFee.Equal(tt.want), "order fee %s", obj.OrderFee)
			assert.True(t, obj.Price.Equal(tt.want), "price %s", obj.Price)
			assert.True(t, obj.OrderFee.LessThanOrEqual(orderdomain.MaxMoney))
			assert.True(t, obj.Quantity.Equal(decimal.NewFromInt(int64(tt.index))), "quantity is never clamped")
		})
	}
}

func TestTextSetters(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil)

	for _, index := range []int{0, 7, 123456, math.MaxInt, -3} {
		obj := &orderdomain.Order{}
		dod.SetOrderStatus(obj, index)
		dod.SetOrderType(obj, index)

		assert.Equal(t, fmt.Sprintf("orderstatus_%d", index), obj.OrderStatus)
		assert.Equal(t, fmt.Sprintf("ordertype_%d", index), obj.OrderType)
		assert.LessOrEqual(t, len(obj.OrderStatus), orderdomain.MaxTextLength)
	}
}

func TestNewTransientOrder(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil, WithRand(lastIntn))

	obj, err := dod.NewTransientOrder(context.Background(), 4)
	require.NoError(t, err)

	assert.True(t, obj.IsTransient())
	assert.NotZero(t, obj.AccountID)
	require.NotNil(t, obj.HoldingID)
	assert.NotZero(t, *obj.HoldingID)
	assert.Equal(t, "GOOG", obj.QuoteSymbol)
	assert.Equal(t, "orderstatus_4", obj.OrderStatus)
	assert.Equal(t, "ordertype_4", obj.OrderType)
	assert.Equal(t, fixedNow.Add(999*time.Second), obj.OpenDate)
	assert.Equal(t, fixedNow.Add(999*time.Second), obj.CompletionDate)
	assert.True(t, obj.Quantity.Equal(decimal.NewFromInt(4)))

	// 每次都会创建新的账户资料
	other, err := dod.NewTransientOrder(context.Background(), 4)
	require.NoError(t, err)
	assert.NotEqual(t, obj.AccountID, other.AccountID)
}

func TestNewTransientOrderPropagatesQuoteError(t *testing.T) {
	env := newTestEnv(t)
	dod := NewOrderDataOnDemand(DefaultConfig(), env.orders, env.accounts, missingQuotes{}, env.holdingDOD(), env.clock)

	_, err := dod.NewTransientOrder(context.Background(), 0)
	assert.ErrorIs(t, err, marketdomain.ErrQuoteNotFound)
}

func TestInitSeedsEmptyStore(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil, WithMetrics(env.metrics))
	ctx := context.Background()

	require.NoError(t, dod.Init(ctx))
	require.Len(t, dod.Data(), 10)
	assert.EqualValues(t, 10, env.countOrders(t))

	entries, err := env.orders.FindOrderEntries(ctx, 0, 10)
	require.NoError(t, err)
	for i, o := range entries {
		assert.Equal(t, fmt.Sprintf("orderstatus_%d", i), o.OrderStatus)
		assert.Equal(t, fmt.Sprintf("ordertype_%d", i), o.OrderType)
	}
	assert.Equal(t, 10.0, testutil.ToFloat64(env.metrics.FixturesSeeded.WithLabelValues("order")))

	// 幂等
	require.NoError(t, dod.Init(ctx))
	assert.EqualValues(t, 10, env.countOrders(t))

	// 新实例复用已有数据
	fresh := env.orderDOD(nil)
	require.NoError(t, fresh.Init(ctx))
	assert.Len(t, fresh.Data(), 10)
	assert.EqualValues(t, 10, env.countOrders(t))
}

func TestInitReusesExistingEntries(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		obj, err := dod.NewTransientOrder(ctx, 100+i)
		require.NoError(t, err)
		require.NoError(t, env.orders.SaveOrder(ctx, obj))
	}

	require.NoError(t, dod.Init(ctx))
	assert.Len(t, dod.Data(), 3)
	assert.EqualValues(t, 3, env.countOrders(t))
}

func TestInitNilEntries(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nilEntriesStore{OrderStore: env.orders})

	err := dod.Init(context.Background())
	require.ErrorIs(t, err, ErrNilEntries)
	assert.Contains(t, err.Error(), "'Order'")
	assert.Empty(t, dod.Data())
}

func TestInitAbortsOnValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(corruptingStore{OrderStore: env.orders, failIndex: 3})

	err := dod.Init(context.Background())
	require.Error(t, err)

	var verr *validation.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "[max=250:")
	assert.Empty(t, dod.Data(), "cache must stay empty after a failed pass")
	assert.EqualValues(t, 3, env.countOrders(t))

	_, err = dod.SpecificOrder(context.Background(), 0)
	require.NoError(t, err, "next call reuses the committed records")
	assert.Len(t, dod.Data(), 3)
}

func TestInitRejectsNonPositiveSeedSize(t *testing.T) {
	env := newTestEnv(t)
	dod := NewOrderDataOnDemand(Config{QuoteSymbol: "GOOG"}, env.orders, env.accounts, env.quotes, env.holdingDOD(), env.clock)

	assert.Error(t, dod.Init(context.Background()))
}

func TestSpecificOrderClampsIndex(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil)
	ctx := context.Background()

	first, err := dod.SpecificOrder(ctx, 0)
	require.NoError(t, err)
	below, err := dod.SpecificOrder(ctx, -5)
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, below.OrderID)

	last, err := dod.SpecificOrder(ctx, 9)
	require.NoError(t, err)
	above, err := dod.SpecificOrder(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, last.OrderID, above.OrderID)
	assert.Equal(t, "orderstatus_9", above.OrderStatus)
}

func TestSpecificOrderRefetchesFromStore(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil)
	ctx := context.Background()

	got, err := dod.SpecificOrder(ctx, 2)
	require.NoError(t, err)

	got.OrderStatus = "changed"
	require.NoError(t, env.orders.SaveOrder(ctx, got))

	again, err := dod.SpecificOrder(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "changed", again.OrderStatus)
}

func TestRandomOrderNormalizesReferences(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil)
	ctx := context.Background()

	require.NoError(t, dod.Init(ctx))
	for _, cached := range dod.Data() {
		stored, err := env.orders.FindOrder(ctx, cached.OrderID)
		require.NoError(t, err)
		stored.AccountID = 77
		stored.QuoteSymbol = "VMW"
		require.NoError(t, env.orders.SaveOrder(ctx, stored))
	}

	for i := 0; i < 25; i++ {
		got, err := dod.RandomOrder(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, got.AccountID)
		assert.Equal(t, "GOOG", got.QuoteSymbol)

		stored, err := env.orders.FindOrder(ctx, got.OrderID)
		require.NoError(t, err)
		assert.EqualValues(t, 77, stored.AccountID, "override is not persisted")
	}
	assert.EqualValues(t, 10, env.countOrders(t))
}

func TestModifyOrder(t *testing.T) {
	env := newTestEnv(t)
	dod := env.orderDOD(nil)
	assert.False(t, dod.ModifyOrder(&orderdomain.Order{}))
	assert.False(t, dod.ModifyOrder(nil))
}
