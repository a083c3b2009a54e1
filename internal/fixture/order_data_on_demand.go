package fixture

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	orderdomain "github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/clock"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

const entityOrder = "Order"

// OrderDataOnDemand 按需生成订单样例数据
//
// 第一次使用时通过 Init 懒加载最多 SeedSize 条订单：存储中已有数据则直接复用，
// 否则生成并保存 0..SeedSize-1 号订单。缓存一旦非空就不会再重新生成。
type OrderDataOnDemand struct {
	cfg      Config
	orders   OrderStore
	accounts AccountProfileStore
	quotes   QuoteFinder
	holdings HoldingSource
	clock    clock.Clock
	opts     options

	data []*orderdomain.Order
}

// NewOrderDataOnDemand 创建订单样例生成器
func NewOrderDataOnDemand(cfg Config, orders OrderStore, accounts AccountProfileStore, quotes QuoteFinder, holdings HoldingSource, clk clock.Clock, opts ...Option) *OrderDataOnDemand {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &OrderDataOnDemand{
		cfg:      cfg,
		orders:   orders,
		accounts: accounts,
		quotes:   quotes,
		holdings: holdings,
		clock:    clk,
		opts:     o,
	}
}

// NewTransientOrder 根据 index 构造一个未持久化的订单
// 会调用账户、持仓、行情协作者，协作者的错误原样向上返回
func (d *OrderDataOnDemand) NewTransientOrder(ctx context.Context, index int) (*orderdomain.Order, error) {
	obj := &orderdomain.Order{}
	if err := d.SetAccountID(ctx, obj, index); err != nil {
		return nil, err
	}
	d.SetCompletionDate(obj, index)
	if err := d.SetHoldingID(ctx, obj, index); err != nil {
		return nil, err
	}
	d.SetOpenDate(obj, index)
	d.SetOrderFee(obj, index)
	d.SetOrderStatus(obj, index)
	d.SetOrderType(obj, index)
	d.SetPrice(obj, index)
	d.SetQuantity(obj, index)
	if err := d.SetQuoteSymbol(ctx, obj, index); err != nil {
		return nil, err
	}
	return obj, nil
}

// SetAccountID 新建一个活跃的假账户资料，取其第一个账户
func (d *OrderDataOnDemand) SetAccountID(ctx context.Context, obj *orderdomain.Order, _ int) error {
	id, err := newActiveAccountID(ctx, d.accounts)
	if err != nil {
		return err
	}
	obj.AccountID = id
	return nil
}

// SetCompletionDate 当前时间加 0-999 秒
func (d *OrderDataOnDemand) SetCompletionDate(obj *orderdomain.Order, _ int) {
	obj.CompletionDate = randomDate(d.clock.Now(), d.opts.intn)
}

// SetHoldingID 引用一个随机的已有持仓
func (d *OrderDataOnDemand) SetHoldingID(ctx context.Context, obj *orderdomain.Order, _ int) error {
	holding, err := d.holdings.RandomHolding(ctx)
	if err != nil {
		return fmt.Errorf("random holding: %w", err)
	}
	id := holding.HoldingID
	obj.HoldingID = &id
	return nil
}

// SetOpenDate 当前时间加 0-999 秒，与 CompletionDate 独立
func (d *OrderDataOnDemand) SetOpenDate(obj *orderdomain.Order, _ int) {
	obj.OpenDate = randomDate(d.clock.Now(), d.opts.intn)
}

// SetOrderFee index 的数值，不超过 999999999999.99
func (d *OrderDataOnDemand) SetOrderFee(obj *orderdomain.Order, index int) {
	obj.OrderFee = clampMoney(decimal.NewFromInt(int64(index)))
}

// SetOrderStatus "orderstatus_"+index，最长 250
func (d *OrderDataOnDemand) SetOrderStatus(obj *orderdomain.Order, index int) {
	obj.OrderStatus = indexed("orderstatus_", index)
}

// SetOrderType "ordertype_"+index，最长 250
func (d *OrderDataOnDemand) SetOrderType(obj *orderdomain.Order, index int) {
	obj.OrderType = indexed("ordertype_", index)
}

// SetPrice 与 SetOrderFee 规则相同
func (d *OrderDataOnDemand) SetPrice(obj *orderdomain.Order, index int) {
	obj.Price = clampMoney(decimal.NewFromInt(int64(index)))
}

// SetQuantity index 的数值，不截断
func (d *OrderDataOnDemand) SetQuantity(obj *orderdomain.Order, index int) {
	obj.Quantity = decimal.NewFromInt(int64(index))
}

// SetQuoteSymbol 按配置的代码查询行情，保存返回的代码
func (d *OrderDataOnDemand) SetQuoteSymbol(ctx context.Context, obj *orderdomain.Order, _ int) error {
	quote, err := d.quotes.FindBySymbol(ctx, d.cfg.QuoteSymbol)
	if err != nil {
		return fmt.Errorf("find quote %s: %w", d.cfg.QuoteSymbol, err)
	}
	obj.QuoteSymbol = quote.Symbol
	return nil
}

// Init 确保样例数据已就绪，可重复调用
//
// 任何一条订单保存失败都会中止本轮生成，缓存保持为空；
// 校验失败时返回的错误链上带有 *validation.ValidationError。
func (d *OrderDataOnDemand) Init(ctx context.Context) error {
	if len(d.data) > 0 {
		return nil
	}
	if d.cfg.SeedSize <= 0 {
		return fmt.Errorf("seed size must be positive, got %d", d.cfg.SeedSize)
	}

	entries, err := d.orders.FindOrderEntries(ctx, 0, d.cfg.SeedSize)
	if err != nil {
		return fmt.Errorf("find %s entries: %w", entityOrder, err)
	}
	if entries == nil {
		return fmt.Errorf("find entries implementation for '%s': %w", entityOrder, ErrNilEntries)
	}
	if len(entries) > 0 {
		d.data = entries
		return nil
	}

	seeded := make([]*orderdomain.Order, 0, d.cfg.SeedSize)
	for i := 0; i < d.cfg.SeedSize; i++ {
		obj, err := d.NewTransientOrder(ctx, i)
		if err != nil {
			return fmt.Errorf("build %s %d: %w", entityOrder, i, err)
		}
		if err := d.orders.SaveOrder(ctx, obj); err != nil {
			var verr *validation.ValidationError
			if errors.As(err, &verr) {
				logger.Error(ctx, "Seed order rejected", "index", i, "violations", verr.Error())
			}
			return fmt.Errorf("save %s %d: %w", entityOrder, i, err)
		}
		seeded = append(seeded, obj)
	}

	d.data = seeded
	d.opts.metrics.RecordSeeded("order", len(seeded))
	logger.Info(ctx, "Order fixtures seeded", "count", len(seeded))
	return nil
}

// SpecificOrder 返回第 index 条样例订单，index 被限制在 [0, len-1]，结果从存储重新读取
func (d *OrderDataOnDemand) SpecificOrder(ctx context.Context, index int) (*orderdomain.Order, error) {
	if err := d.Init(ctx); err != nil {
		return nil, err
	}
	obj := d.data[clampIndex(index, len(d.data))]
	return d.find(ctx, obj.OrderID)
}

// RandomOrder 随机返回一条样例订单
// 返回前把 AccountID 改为哨兵账户、QuoteSymbol 改为配置的代码，方便下游断言
func (d *OrderDataOnDemand) RandomOrder(ctx context.Context) (*orderdomain.Order, error) {
	if err := d.Init(ctx); err != nil {
		return nil, err
	}
	obj := d.data[d.opts.intn(len(d.data))]
	ret, err := d.find(ctx, obj.OrderID)
	if err != nil {
		return nil, err
	}
	ret.AccountID = d.cfg.SentinelAccountID
	ret.QuoteSymbol = d.cfg.QuoteSymbol
	return ret, nil
}

// ModifyOrder 预留的扩展点，总是返回 false
func (d *OrderDataOnDemand) ModifyOrder(*orderdomain.Order) bool {
	return false
}

// Data 返回当前缓存的样例（未初始化时为空）
func (d *OrderDataOnDemand) Data() []*orderdomain.Order {
	return d.data
}

func (d *OrderDataOnDemand) find(ctx context.Context, id uint) (*orderdomain.Order, error) {
	order, err := d.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, orderdomain.ErrOrderNotFound)
	}
	return order, nil
}
