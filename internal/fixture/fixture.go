// Package fixture 按需生成持久化测试用的样例数据（data on demand）。
//
// 生成器只依赖下面声明的窄接口，由调用方显式注入具体服务。
// 生成器本身不做并发保护，只能在单个 goroutine 中使用。
package fixture

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	accountdomain "github.com/wyfcoding/nanotrader/internal/account/domain"
	marketdomain "github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	orderdomain "github.com/wyfcoding/nanotrader/internal/order/domain"
	positiondomain "github.com/wyfcoding/nanotrader/internal/position/domain"
	"github.com/wyfcoding/nanotrader/pkg/metrics"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

// ErrNilEntries 区间查询返回了 nil 而不是空切片，属于配置错误，不应重试
var ErrNilEntries = errors.New("find entries implementation illegally returned nil")

// ErrNoAccounts 保存后的账户资料没有任何账户
var ErrNoAccounts = errors.New("saved account profile has no accounts")

// OrderStore 订单持久化能力，由 order/application.OrderService 实现
type OrderStore interface {
	SaveOrder(ctx context.Context, order *orderdomain.Order) error
	FindOrder(ctx context.Context, orderID uint) (*orderdomain.Order, error)
	// FindOrderEntries 成功时必须返回非 nil 切片
	FindOrderEntries(ctx context.Context, from, to int) ([]*orderdomain.Order, error)
}

// AccountProfileStore 账户资料能力，由 account/application.AccountProfileService 实现
type AccountProfileStore interface {
	FakeAccountProfile(active bool) *accountdomain.AccountProfile
	// SaveAccountProfile 返回的资料至少带一个账户
	SaveAccountProfile(ctx context.Context, profile *accountdomain.AccountProfile) (*accountdomain.AccountProfile, error)
}

// QuoteFinder 行情查询能力，由 marketdata/application.QuoteService 实现
type QuoteFinder interface {
	FindBySymbol(ctx context.Context, symbol string) (*marketdomain.Quote, error)
}

// HoldingSource 提供一个已存在的随机持仓，由 HoldingDataOnDemand 实现
type HoldingSource interface {
	RandomHolding(ctx context.Context) (*positiondomain.Holding, error)
}

// HoldingStore 持仓持久化能力，由 position/application.HoldingService 实现
type HoldingStore interface {
	SaveHolding(ctx context.Context, holding *positiondomain.Holding) error
	FindHolding(ctx context.Context, holdingID uint) (*positiondomain.Holding, error)
	FindHoldingEntries(ctx context.Context, from, to int) ([]*positiondomain.Holding, error)
}

// Config 生成器配置
type Config struct {
	// 种子记录数
	SeedSize int
	// 引用的行情代码
	QuoteSymbol string
	// RandomOrder 返回前统一改写的账户 ID
	SentinelAccountID uint
}

// DefaultConfig 10 条种子、GOOG、账户 1
func DefaultConfig() Config {
	return Config{
		SeedSize:          10,
		QuoteSymbol:       "GOOG",
		SentinelAccountID: 1,
	}
}

// Option 调整生成器的随机源或指标
type Option func(*options)

type options struct {
	intn    func(n int) int
	metrics *metrics.Metrics
}

func defaultOptions() options {
	return options{intn: rand.Intn}
}

// WithRand 替换随机数来源，intn 必须返回 [0, n) 内的值
func WithRand(intn func(n int) int) Option {
	return func(o *options) {
		if intn != nil {
			o.intn = intn
		}
	}
}

// WithMetrics 记录生成的种子数
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// maxDateOffset 随机时间偏移的上限（秒，不含）
const maxDateOffset = 1000

// randomDate 在 now 基础上加 0-999 秒
func randomDate(now time.Time, intn func(int) int) time.Time {
	return now.Add(time.Duration(intn(maxDateOffset)) * time.Second)
}

// clampMoney 超过 decimal(14,2) 上限时截为上限
func clampMoney(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(orderdomain.MaxMoney) {
		return orderdomain.MaxMoney
	}
	return d
}

func indexed(prefix string, index int) string {
	return validation.Truncate(prefix+strconv.Itoa(index), orderdomain.MaxTextLength)
}

func clampIndex(index, size int) int {
	if index < 0 {
		index = 0
	}
	if index > size-1 {
		index = size - 1
	}
	return index
}

// newActiveAccountID 创建并保存一个活跃的假账户资料，返回其第一个账户的 ID
func newActiveAccountID(ctx context.Context, accounts AccountProfileStore) (uint, error) {
	profile, err := accounts.SaveAccountProfile(ctx, accounts.FakeAccountProfile(true))
	if err != nil {
		return 0, fmt.Errorf("save fake account profile: %w", err)
	}
	primary := profile.PrimaryAccount()
	if primary == nil {
		return 0, ErrNoAccounts
	}
	return primary.AccountID, nil
}
