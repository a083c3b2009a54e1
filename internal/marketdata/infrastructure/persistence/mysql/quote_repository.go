// Package mysql 行情仓储的 GORM 实现
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/nanotrader/internal/marketdata/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuoteModel 行情表映射
type QuoteModel struct {
	Symbol      string          `gorm:"column:symbol;type:varchar(250);primaryKey"`
	CompanyName string          `gorm:"column:companyname;type:varchar(250)"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(14,2)"`
	Open        decimal.Decimal `gorm:"column:open1;type:decimal(14,2)"`
	Low         decimal.Decimal `gorm:"column:low;type:decimal(14,2)"`
	High        decimal.Decimal `gorm:"column:high;type:decimal(14,2)"`
	Change      decimal.Decimal `gorm:"column:change1;type:decimal(14,2)"`
	Volume      decimal.Decimal `gorm:"column:volume;type:decimal(20,2)"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

// TableName 指定表名
func (QuoteModel) TableName() string { return "quote" }

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository 创建行情仓储
func NewQuoteRepository(db *gorm.DB) domain.QuoteRepository {
	return &quoteRepository{db: db}
}

// AutoMigrate 创建或更新 quote 表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&QuoteModel{})
}

func (r *quoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	model := toQuoteModel(quote)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save quote %s: %w", quote.Symbol, err)
	}
	quote.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *quoteRepository) GetLatest(ctx context.Context, symbol string) (*domain.Quote, error) {
	var model QuoteModel
	if err := r.db.WithContext(ctx).First(&model, "symbol = ?", symbol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote %s: %w", symbol, err)
	}
	return toQuote(&model), nil
}

func toQuoteModel(q *domain.Quote) *QuoteModel {
	return &QuoteModel{
		Symbol:      q.Symbol,
		CompanyName: q.CompanyName,
		Price:       q.Price,
		Open:        q.Open,
		Low:         q.Low,
		High:        q.High,
		Change:      q.Change,
		Volume:      q.Volume,
		UpdatedAt:   q.UpdatedAt,
	}
}

func toQuote(m *QuoteModel) *domain.Quote {
	return &domain.Quote{
		Symbol:      m.Symbol,
		CompanyName: m.CompanyName,
		Price:       m.Price,
		Open:        m.Open,
		Low:         m.Low,
		High:        m.High,
		Change:      m.Change,
		Volume:      m.Volume,
		UpdatedAt:   m.UpdatedAt,
	}
}
