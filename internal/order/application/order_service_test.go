package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/internal/order/infrastructure/persistence/memory"
	"github.com/wyfcoding/nanotrader/pkg/metrics"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

type recordingPublisher struct {
	events []domain.OrderCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, e domain.OrderCreatedEvent) error {
	p.events = append(p.events, e)
	return p.err
}

type failingRepo struct {
	domain.OrderRepository
	err error
}

func (r failingRepo) Save(context.Context, *domain.Order) error { return r.err }

func validOrder() *domain.Order {
	return &domain.Order{
		AccountID:   1,
		QuoteSymbol: "GOOG",
		OpenDate:    time.Now(),
		OrderFee:    decimal.NewFromInt(1),
		OrderStatus: "orderstatus_1",
		OrderType:   "ordertype_1",
		Price:       decimal.NewFromInt(1),
		Quantity:    decimal.NewFromInt(1),
	}
}

func newService() (*OrderService, *recordingPublisher, *metrics.Metrics) {
	pub := &recordingPublisher{}
	m := metrics.New("test")
	return NewOrderService(memory.NewOrderRepository(), pub, m), pub, m
}

func TestSaveOrderAssignsIDAndPublishes(t *testing.T) {
	svc, pub, m := newService()
	order := validOrder()

	require.NoError(t, svc.SaveOrder(context.Background(), order))
	assert.NotZero(t, order.OrderID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, order.OrderID, pub.events[0].OrderID)
	assert.Equal(t, "GOOG", pub.events[0].QuoteSymbol)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesSaved.WithLabelValues("order")))

	// 更新已有订单不重复发布事件
	order.OrderStatus = "closed"
	require.NoError(t, svc.SaveOrder(context.Background(), order))
	assert.Len(t, pub.events, 1)
}

func TestSaveOrderValidation(t *testing.T) {
	svc, pub, m := newService()
	order := validOrder()
	order.AccountID = 0
	order.OrderStatus = strings.Repeat("x", 251)
	order.Price = domain.MaxMoney.Add(decimal.RequireFromString("0.01"))

	err := svc.SaveOrder(context.Background(), order)
	require.Error(t, err)

	var verr *validation.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Violations, 3)
	assert.Zero(t, order.OrderID)
	assert.Empty(t, pub.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("order")))
}

func TestSaveOrderAcceptsBoundaryValues(t *testing.T) {
	svc, _, _ := newService()
	order := validOrder()
	order.OrderStatus = strings.Repeat("s", domain.MaxTextLength)
	order.OrderFee = domain.MaxMoney
	order.Price = domain.MaxMoney

	assert.NoError(t, svc.SaveOrder(context.Background(), order))
}

func TestSaveOrderPublishFailureIsNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("kafka down")}
	svc := NewOrderService(memory.NewOrderRepository(), pub, nil)

	order := validOrder()
	require.NoError(t, svc.SaveOrder(context.Background(), order))
	assert.NotZero(t, order.OrderID)
}

func TestSaveOrderRepositoryError(t *testing.T) {
	svc := NewOrderService(failingRepo{err: errors.New("db down")}, &recordingPublisher{}, nil)
	assert.EqualError(t, svc.SaveOrder(context.Background(), validOrder()), "db down")
	assert.Error(t, svc.SaveOrder(context.Background(), nil))
}

func TestFindOrder(t *testing.T) {
	svc, _, _ := newService()
	order := validOrder()
	require.NoError(t, svc.SaveOrder(context.Background(), order))

	got, err := svc.FindOrder(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderStatus, got.OrderStatus)

	_, err = svc.FindOrder(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestFindOrderEntries(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	entries, err := svc.FindOrderEntries(ctx, 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	for i := 0; i < 12; i++ {
		require.NoError(t, svc.SaveOrder(ctx, validOrder()))
	}

	entries, err = svc.FindOrderEntries(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	entries, err = svc.FindOrderEntries(ctx, 10, 20)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.FindOrderEntries(ctx, 5, 1)
	assert.Error(t, err)

	n, err := svc.CountOrders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 12, n)
}
