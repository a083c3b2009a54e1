// Package mysql 账户资料仓储的 GORM 实现
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/nanotrader/internal/account/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"gorm.io/gorm"
)

type accountProfileRepository struct {
	db *gorm.DB
}

// NewAccountProfileRepository 创建账户资料仓储
func NewAccountProfileRepository(db *gorm.DB) domain.AccountProfileRepository {
	return &accountProfileRepository{db: db}
}

// AutoMigrate 创建或更新 accountprofile / account 表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&AccountProfileModel{}, &AccountModel{})
}

// Save 在同一事务中保存资料和账户
func (r *accountProfileRepository) Save(ctx context.Context, profile *domain.AccountProfile) error {
	model := toProfileModel(profile)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 关联记录随主记录一起 upsert
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
	if err != nil {
		logger.Error(ctx, "account_profile_repository.save failed", "user_id", profile.UserID, "error", err)
		return fmt.Errorf("failed to save account profile: %w", err)
	}

	profile.ProfileID = model.ProfileID
	profile.CreatedAt = model.CreatedAt
	profile.UpdatedAt = model.UpdatedAt
	for i := range model.Accounts {
		profile.Accounts[i].AccountID = model.Accounts[i].AccountID
		profile.Accounts[i].ProfileID = model.ProfileID
	}
	return nil
}

// Get 根据 ProfileID 获取资料
func (r *accountProfileRepository) Get(ctx context.Context, profileID uint) (*domain.AccountProfile, error) {
	return r.first(ctx, "profileid = ?", profileID)
}

// GetByUserID 根据 UserID 获取资料
func (r *accountProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.AccountProfile, error) {
	return r.first(ctx, "userid = ?", userID)
}

func (r *accountProfileRepository) first(ctx context.Context, query string, arg any) (*domain.AccountProfile, error) {
	var model AccountProfileModel
	err := r.db.WithContext(ctx).
		Preload("Accounts", func(db *gorm.DB) *gorm.DB { return db.Order("accountid asc") }).
		First(&model, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "account_profile_repository.get failed", "query", query, "error", err)
		return nil, fmt.Errorf("failed to get account profile: %w", err)
	}
	return toProfile(&model), nil
}
