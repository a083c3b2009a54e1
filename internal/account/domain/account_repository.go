package domain

import "context"

// AccountProfileRepository 账户资料仓储接口
type AccountProfileRepository interface {
	// Save 保存资料和账户，新记录会被分配 ProfileID / AccountID
	Save(ctx context.Context, profile *AccountProfile) error
	// Get 根据 ProfileID 获取资料（含账户），不存在时返回 nil, nil
	Get(ctx context.Context, profileID uint) (*AccountProfile, error)
	// GetByUserID 根据 UserID 获取资料，不存在时返回 nil, nil
	GetByUserID(ctx context.Context, userID string) (*AccountProfile, error)
}
