package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/nanotrader/internal/order/domain"
)

// OrderModel 订单表映射
type OrderModel struct {
	OrderID        uint            `gorm:"column:orderid;primaryKey;autoIncrement"`
	AccountID      uint            `gorm:"column:account_accountid;index;not null"`
	HoldingID      *uint           `gorm:"column:holding_holdingid;index"`
	QuoteSymbol    string          `gorm:"column:quote_symbol;type:varchar(250);index;not null"`
	OpenDate       time.Time       `gorm:"column:opendate"`
	CompletionDate time.Time       `gorm:"column:completiondate"`
	OrderFee       decimal.Decimal `gorm:"column:orderfee;type:decimal(14,2)"`
	OrderStatus    string          `gorm:"column:orderstatus;type:varchar(250)"`
	OrderType      string          `gorm:"column:ordertype;type:varchar(250)"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(14,2)"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:decimal(20,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

// TableName 指定表名
func (OrderModel) TableName() string { return "orders" }

func toOrderModel(o *domain.Order) *OrderModel {
	if o == nil {
		return nil
	}
	return &OrderModel{
		OrderID:        o.OrderID,
		AccountID:      o.AccountID,
		HoldingID:      o.HoldingID,
		QuoteSymbol:    o.QuoteSymbol,
		OpenDate:       o.OpenDate,
		CompletionDate: o.CompletionDate,
		OrderFee:       o.OrderFee,
		OrderStatus:    o.OrderStatus,
		OrderType:      o.OrderType,
		Price:          o.Price,
		Quantity:       o.Quantity,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toOrder(m *OrderModel) *domain.Order {
	if m == nil {
		return nil
	}
	return &domain.Order{
		OrderID:        m.OrderID,
		AccountID:      m.AccountID,
		HoldingID:      m.HoldingID,
		QuoteSymbol:    m.QuoteSymbol,
		OpenDate:       m.OpenDate,
		CompletionDate: m.CompletionDate,
		OrderFee:       m.OrderFee,
		OrderStatus:    m.OrderStatus,
		OrderType:      m.OrderType,
		Price:          m.Price,
		Quantity:       m.Quantity,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
