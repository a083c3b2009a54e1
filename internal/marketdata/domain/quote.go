// Package domain 行情服务的领域模型
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrQuoteNotFound 行情不存在
var ErrQuoteNotFound = errors.New("quote not found")

// Quote 某个代码的最新行情
type Quote struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyname"`
	Price       decimal.Decimal `json:"price"`
	Open        decimal.Decimal `json:"open1"`
	Low         decimal.Decimal `json:"low"`
	High        decimal.Decimal `json:"high"`
	Change      decimal.Decimal `json:"change1"`
	Volume      decimal.Decimal `json:"volume"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// QuoteRepository 行情仓储接口
type QuoteRepository interface {
	// Save 按 Symbol 插入或覆盖
	Save(ctx context.Context, quote *Quote) error
	// GetLatest 不存在时返回 nil, nil
	GetLatest(ctx context.Context, symbol string) (*Quote, error)
}
