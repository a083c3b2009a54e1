// Package mysql 持仓仓储的 GORM 实现
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/nanotrader/internal/position/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"gorm.io/gorm"
)

// HoldingModel 持仓表映射
type HoldingModel struct {
	HoldingID     uint            `gorm:"column:holdingid;primaryKey;autoIncrement"`
	AccountID     uint            `gorm:"column:account_accountid;index;not null"`
	QuoteSymbol   string          `gorm:"column:quote_symbol;type:varchar(250);not null"`
	PurchaseDate  time.Time       `gorm:"column:purchasedate"`
	PurchasePrice decimal.Decimal `gorm:"column:purchaseprice;type:decimal(14,2)"`
	Quantity      decimal.Decimal `gorm:"column:quantity;type:decimal(20,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

// TableName 指定表名
func (HoldingModel) TableName() string { return "holding" }

type holdingRepository struct {
	db *gorm.DB
}

// NewHoldingRepository 创建持仓仓储
func NewHoldingRepository(db *gorm.DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

// AutoMigrate 创建或更新 holding 表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&HoldingModel{})
}

func (r *holdingRepository) Save(ctx context.Context, holding *domain.Holding) error {
	model := toHoldingModel(holding)

	var err error
	if model.HoldingID == 0 {
		err = r.db.WithContext(ctx).Create(model).Error
	} else {
		err = r.db.WithContext(ctx).Save(model).Error
	}
	if err != nil {
		logger.Error(ctx, "holding_repository.save failed", "holding_id", holding.HoldingID, "error", err)
		return fmt.Errorf("failed to save holding: %w", err)
	}

	holding.HoldingID = model.HoldingID
	holding.CreatedAt = model.CreatedAt
	holding.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *holdingRepository) Get(ctx context.Context, holdingID uint) (*domain.Holding, error) {
	var model HoldingModel
	if err := r.db.WithContext(ctx).First(&model, "holdingid = ?", holdingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return toHolding(&model), nil
}

func (r *holdingRepository) List(ctx context.Context, offset, limit int) ([]*domain.Holding, error) {
	var models []HoldingModel
	if err := r.db.WithContext(ctx).Order("holdingid asc").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	holdings := make([]*domain.Holding, len(models))
	for i := range models {
		holdings[i] = toHolding(&models[i])
	}
	return holdings, nil
}

func toHoldingModel(h *domain.Holding) *HoldingModel {
	return &HoldingModel{
		HoldingID:     h.HoldingID,
		AccountID:     h.AccountID,
		QuoteSymbol:   h.QuoteSymbol,
		PurchaseDate:  h.PurchaseDate,
		PurchasePrice: h.PurchasePrice,
		Quantity:      h.Quantity,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

func toHolding(m *HoldingModel) *domain.Holding {
	return &domain.Holding{
		HoldingID:     m.HoldingID,
		AccountID:     m.AccountID,
		QuoteSymbol:   m.QuoteSymbol,
		PurchaseDate:  m.PurchaseDate,
		PurchasePrice: m.PurchasePrice,
		Quantity:      m.Quantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
