package fixture

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	positiondomain "github.com/wyfcoding/nanotrader/internal/position/domain"
	"github.com/wyfcoding/nanotrader/pkg/clock"
	"github.com/wyfcoding/nanotrader/pkg/logger"
)

const entityHolding = "Holding"

var _ HoldingSource = (*HoldingDataOnDemand)(nil)

// HoldingDataOnDemand 按需生成持仓样例数据，规则与 OrderDataOnDemand 相同
type HoldingDataOnDemand struct {
	cfg      Config
	holdings HoldingStore
	accounts AccountProfileStore
	quotes   QuoteFinder
	clock    clock.Clock
	opts     options

	data []*positiondomain.Holding
}

// NewHoldingDataOnDemand 创建持仓样例生成器
func NewHoldingDataOnDemand(cfg Config, holdings HoldingStore, accounts AccountProfileStore, quotes QuoteFinder, clk clock.Clock, opts ...Option) *HoldingDataOnDemand {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &HoldingDataOnDemand{
		cfg:      cfg,
		holdings: holdings,
		accounts: accounts,
		quotes:   quotes,
		clock:    clk,
		opts:     o,
	}
}

// NewTransientHolding 根据 index 构造一个未持久化的持仓
func (d *HoldingDataOnDemand) NewTransientHolding(ctx context.Context, index int) (*positiondomain.Holding, error) {
	accountID, err := newActiveAccountID(ctx, d.accounts)
	if err != nil {
		return nil, err
	}
	quote, err := d.quotes.FindBySymbol(ctx, d.cfg.QuoteSymbol)
	if err != nil {
		return nil, fmt.Errorf("find quote %s: %w", d.cfg.QuoteSymbol, err)
	}

	return &positiondomain.Holding{
		AccountID:     accountID,
		QuoteSymbol:   quote.Symbol,
		PurchaseDate:  randomDate(d.clock.Now(), d.opts.intn),
		PurchasePrice: clampMoney(decimal.NewFromInt(int64(index))),
		Quantity:      decimal.NewFromInt(int64(index)),
	}, nil
}

// Init 确保持仓样例已就绪，语义同 OrderDataOnDemand.Init
func (d *HoldingDataOnDemand) Init(ctx context.Context) error {
	if len(d.data) > 0 {
		return nil
	}
	if d.cfg.SeedSize <= 0 {
		return fmt.Errorf("seed size must be positive, got %d", d.cfg.SeedSize)
	}

	entries, err := d.holdings.FindHoldingEntries(ctx, 0, d.cfg.SeedSize)
	if err != nil {
		return fmt.Errorf("find %s entries: %w", entityHolding, err)
	}
	if entries == nil {
		return fmt.Errorf("find entries implementation for '%s': %w", entityHolding, ErrNilEntries)
	}
	if len(entries) > 0 {
		d.data = entries
		return nil
	}

	seeded := make([]*positiondomain.Holding, 0, d.cfg.SeedSize)
	for i := 0; i < d.cfg.SeedSize; i++ {
		obj, err := d.NewTransientHolding(ctx, i)
		if err != nil {
			return fmt.Errorf("build %s %d: %w", entityHolding, i, err)
		}
		if err := d.holdings.SaveHolding(ctx, obj); err != nil {
			return fmt.Errorf("save %s %d: %w", entityHolding, i, err)
		}
		seeded = append(seeded, obj)
	}

	d.data = seeded
	d.opts.metrics.RecordSeeded("holding", len(seeded))
	logger.Info(ctx, "Holding fixtures seeded", "count", len(seeded))
	return nil
}

// SpecificHolding 返回第 index 条样例持仓，index 被限制在 [0, len-1]
func (d *HoldingDataOnDemand) SpecificHolding(ctx context.Context, index int) (*positiondomain.Holding, error) {
	if err := d.Init(ctx); err != nil {
		return nil, err
	}
	return d.holdings.FindHolding(ctx, d.data[clampIndex(index, len(d.data))].HoldingID)
}

// RandomHolding 随机返回一条样例持仓
func (d *HoldingDataOnDemand) RandomHolding(ctx context.Context) (*positiondomain.Holding, error) {
	if err := d.Init(ctx); err != nil {
		return nil, err
	}
	return d.holdings.FindHolding(ctx, d.data[d.opts.intn(len(d.data))].HoldingID)
}

// ModifyHolding 总是返回 false
func (d *HoldingDataOnDemand) ModifyHolding(*positiondomain.Holding) bool {
	return false
}
