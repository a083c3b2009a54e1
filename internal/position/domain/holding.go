// Package domain 持仓服务的领域模型
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrHoldingNotFound 持仓不存在
var ErrHoldingNotFound = errors.New("holding not found")

// Holding 持仓
// 账户在某个行情代码上买入后形成，HoldingID 由持久层分配
type Holding struct {
	HoldingID     uint            `json:"holdingid"`
	AccountID     uint            `json:"accountid" validate:"required"`
	QuoteSymbol   string          `json:"quoteid" validate:"required,max=250"`
	PurchaseDate  time.Time       `json:"purchasedate" validate:"required"`
	PurchasePrice decimal.Decimal `json:"purchaseprice" validate:"decmin=0,decmax=999999999999.99"`
	Quantity      decimal.Decimal `json:"quantity" validate:"decmin=0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsTransient 是否尚未持久化
func (h *Holding) IsTransient() bool {
	return h.HoldingID == 0
}

// HoldingRepository 持仓仓储接口
type HoldingRepository interface {
	// Save 保存持仓，新记录会被分配 HoldingID
	Save(ctx context.Context, holding *Holding) error
	// Get 不存在时返回 nil, nil
	Get(ctx context.Context, holdingID uint) (*Holding, error)
	// List 按 HoldingID 升序分页，结果非 nil
	List(ctx context.Context, offset, limit int) ([]*Holding, error)
}
