// Package domain 包含订单服务的领域模型
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

// MaxMoney 金额字段 decimal(14,2) 能容纳的最大值
var MaxMoney = decimal.RequireFromString("999999999999.99")

// MaxTextLength 字符串字段的最大长度
const MaxTextLength = validation.MaxTextLength

// ErrOrderNotFound 订单不存在
var ErrOrderNotFound = errors.New("order not found")

// Order 订单实体
// 代表账户针对某个行情代码下的一笔委托，OrderID 由持久层分配
type Order struct {
	// 订单 ID，未持久化时为 0
	OrderID uint `json:"orderid"`
	// 所属账户 ID
	AccountID uint `json:"accountid" validate:"required"`
	// 关联持仓 ID（卖单才有）
	HoldingID *uint `json:"holdingid,omitempty"`
	// 行情代码
	QuoteSymbol string `json:"quoteid" validate:"required,max=250"`
	// 下单时间
	OpenDate time.Time `json:"opendate" validate:"required"`
	// 完成时间
	CompletionDate time.Time `json:"completiondate"`
	// 手续费
	OrderFee decimal.Decimal `json:"orderfee" validate:"decmin=0,decmax=999999999999.99"`
	// 订单状态
	OrderStatus string `json:"orderstatus" validate:"max=250"`
	// 订单类型
	OrderType string `json:"ordertype" validate:"max=250"`
	// 委托价格
	Price decimal.Decimal `json:"price" validate:"decmin=0,decmax=999999999999.99"`
	// 委托数量
	Quantity decimal.Decimal `json:"quantity" validate:"decmin=0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsTransient 是否尚未持久化
func (o *Order) IsTransient() bool {
	return o.OrderID == 0
}

// Clone 返回浅拷贝，HoldingID 指针也会复制
func (o *Order) Clone() *Order {
	c := *o
	if o.HoldingID != nil {
		id := *o.HoldingID
		c.HoldingID = &id
	}
	return &c
}
