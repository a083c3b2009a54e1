package main

import (
	"context"
	"fmt"
	"time"

	accountapp "github.com/wyfcoding/nanotrader/internal/account/application"
	accountdomain "github.com/wyfcoding/nanotrader/internal/account/domain"
	accountmemory "github.com/wyfcoding/nanotrader/internal/account/infrastructure/persistence/memory"
	accountmysql "github.com/wyfcoding/nanotrader/internal/account/infrastructure/persistence/mysql"
	"github.com/wyfcoding/nanotrader/internal/fixture"
	marketapp "github.com/wyfcoding/nanotrader/internal/marketdata/application"
	marketdomain "github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	marketpersistence "github.com/wyfcoding/nanotrader/internal/marketdata/infrastructure/persistence"
	marketmemory "github.com/wyfcoding/nanotrader/internal/marketdata/infrastructure/persistence/memory"
	marketmysql "github.com/wyfcoding/nanotrader/internal/marketdata/infrastructure/persistence/mysql"
	marketredis "github.com/wyfcoding/nanotrader/internal/marketdata/infrastructure/persistence/redis"
	orderapp "github.com/wyfcoding/nanotrader/internal/order/application"
	orderdomain "github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/internal/order/infrastructure/messaging"
	orderpersistence "github.com/wyfcoding/nanotrader/internal/order/infrastructure/persistence"
	ordermemory "github.com/wyfcoding/nanotrader/internal/order/infrastructure/persistence/memory"
	ordermysql "github.com/wyfcoding/nanotrader/internal/order/infrastructure/persistence/mysql"
	orderredis "github.com/wyfcoding/nanotrader/internal/order/infrastructure/persistence/redis"
	positionapp "github.com/wyfcoding/nanotrader/internal/position/application"
	positiondomain "github.com/wyfcoding/nanotrader/internal/position/domain"
	positionmemory "github.com/wyfcoding/nanotrader/internal/position/infrastructure/persistence/memory"
	positionmysql "github.com/wyfcoding/nanotrader/internal/position/infrastructure/persistence/mysql"
	"github.com/wyfcoding/nanotrader/pkg/cache"
	"github.com/wyfcoding/nanotrader/pkg/clock"
	"github.com/wyfcoding/nanotrader/pkg/config"
	"github.com/wyfcoding/nanotrader/pkg/db"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/metrics"
	"github.com/wyfcoding/nanotrader/pkg/mq"
	"github.com/wyfcoding/nanotrader/pkg/utils"
	"gorm.io/gorm"
)

// 外部存储启动较慢时的连接重试
const (
	connectAttempts = 5
	connectDelay    = 500 * time.Millisecond
	connectMaxDelay = 5 * time.Second
)

// app 装配好的服务与生成器
type app struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	redis    *cache.RedisCache
	orderSvc *orderapp.OrderService
	orders   *fixture.OrderDataOnDemand
	holdings *fixture.HoldingDataOnDemand

	closers []func() error
}

type repositories struct {
	orders   orderdomain.OrderRepository
	accounts accountdomain.AccountProfileRepository
	holdings positiondomain.HoldingRepository
	quotes   marketdomain.QuoteRepository
}

// buildApp 按配置装配依赖
// database.driver 为 memory 时不连接任何外部存储
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, metrics: metrics.New(cfg.ServiceName)}

	repos, err := a.openRepositories(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.RedisEnabled() {
		var redisCache *cache.RedisCache
		err := utils.RetryWithBackoff(ctx, connectAttempts, connectDelay, connectMaxDelay, func() error {
			var err error
			redisCache, err = cache.New(cache.Config{
				Host:         cfg.Redis.Host,
				Port:         cfg.Redis.Port,
				Password:     cfg.Redis.Password,
				DB:           cfg.Redis.DB,
				MaxPoolSize:  cfg.Redis.MaxPoolSize,
				ConnTimeout:  cfg.Redis.ConnTimeout,
				ReadTimeout:  cfg.Redis.ReadTimeout,
				WriteTimeout: cfg.Redis.WriteTimeout,
			})
			return err
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = redisCache
		a.closers = append(a.closers, redisCache.Close)

		repos.orders = orderpersistence.NewCompositeOrderRepository(repos.orders, orderredis.NewOrderRedisRepository(redisCache))
		repos.quotes = marketpersistence.NewCompositeQuoteRepository(repos.quotes, marketredis.NewQuoteRedisRepository(redisCache))
	}

	var publisher orderdomain.EventPublisher = messaging.NopEventPublisher{}
	if cfg.KafkaEnabled() {
		producer := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		a.closers = append(a.closers, producer.Close)
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.OrderTopic)
	}

	a.orderSvc = orderapp.NewOrderService(repos.orders, publisher, a.metrics)
	accounts := accountapp.NewAccountProfileService(repos.accounts, a.metrics)
	holdingSvc := positionapp.NewHoldingService(repos.holdings, a.metrics)
	quotes := marketapp.NewQuoteService(repos.quotes)

	if _, err := quotes.EnsureQuote(ctx, cfg.Fixtures.QuoteSymbol); err != nil {
		a.Close()
		return nil, fmt.Errorf("ensure quote %s: %w", cfg.Fixtures.QuoteSymbol, err)
	}

	fixtureCfg := fixture.Config{
		SeedSize:          cfg.Fixtures.SeedSize,
		QuoteSymbol:       cfg.Fixtures.QuoteSymbol,
		SentinelAccountID: cfg.Fixtures.SentinelAccountID,
	}
	clk := clock.NewSystem()
	a.holdings = fixture.NewHoldingDataOnDemand(fixtureCfg, holdingSvc, accounts, quotes, clk, fixture.WithMetrics(a.metrics))
	a.orders = fixture.NewOrderDataOnDemand(fixtureCfg, a.orderSvc, accounts, quotes, a.holdings, clk, fixture.WithMetrics(a.metrics))
	return a, nil
}

func (a *app) openRepositories(ctx context.Context) (*repositories, error) {
	if a.cfg.Database.Driver == "memory" {
		logger.Warn(ctx, "Using in-memory repositories, data is lost on exit")
		return &repositories{
			orders:   ordermemory.NewOrderRepository(),
			accounts: accountmemory.NewAccountProfileRepository(),
			holdings: positionmemory.NewHoldingRepository(),
			quotes:   marketmemory.NewQuoteRepository(),
		}, nil
	}

	var database *db.DB
	err := utils.RetryWithBackoff(ctx, connectAttempts, connectDelay, connectMaxDelay, func() error {
		var err error
		database, err = db.Init(db.Config{
			Driver:             a.cfg.Database.Driver,
			DSN:                a.cfg.Database.DSN,
			MaxOpenConns:       a.cfg.Database.MaxOpenConns,
			MaxIdleConns:       a.cfg.Database.MaxIdleConns,
			ConnMaxLifetime:    a.cfg.Database.ConnMaxLifetime,
			LogEnabled:         a.cfg.Database.LogEnabled,
			SlowQueryThreshold: a.cfg.Database.SlowQueryThreshold,
		})
		if err != nil {
			logger.Warn(ctx, "Database not ready", "driver", a.cfg.Database.Driver, "error", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, database.Close)

	if a.cfg.Database.AutoMigrate {
		if err := migrate(database.DB); err != nil {
			return nil, err
		}
	}

	return &repositories{
		orders:   ordermysql.NewOrderRepository(database.DB),
		accounts: accountmysql.NewAccountProfileRepository(database.DB),
		holdings: positionmysql.NewHoldingRepository(database.DB),
		quotes:   marketmysql.NewQuoteRepository(database.DB),
	}, nil
}

func migrate(gdb *gorm.DB) error {
	for name, fn := range map[string]func(*gorm.DB) error{
		"orders":   ordermysql.AutoMigrate,
		"accounts": accountmysql.AutoMigrate,
		"holdings": positionmysql.AutoMigrate,
		"quotes":   marketmysql.AutoMigrate,
	} {
		if err := fn(gdb); err != nil {
			return fmt.Errorf("auto migrate %s: %w", name, err)
		}
	}
	return nil
}

// Close 逆序释放资源
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Error(context.Background(), "Failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
