// Package application 账户资料的用例逻辑
package application

import (
	"context"
	"fmt"

	"github.com/Pallinder/go-randomdata"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/nanotrader/internal/account/domain"
	"github.com/wyfcoding/nanotrader/pkg/clock"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/metrics"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

const entityAccountProfile = "account_profile"

// AccountProfileService 账户资料应用服务
type AccountProfileService struct {
	repo      domain.AccountProfileRepository
	validator *validation.Validator
	metrics   *metrics.Metrics
	clock     clock.Clock
}

// NewAccountProfileService 创建账户资料服务，m 可以为 nil
func NewAccountProfileService(repo domain.AccountProfileRepository, m *metrics.Metrics) *AccountProfileService {
	return NewAccountProfileServiceWithClock(repo, m, clock.NewSystem())
}

// NewAccountProfileServiceWithClock 使用指定时钟创建服务
func NewAccountProfileServiceWithClock(repo domain.AccountProfileRepository, m *metrics.Metrics, c clock.Clock) *AccountProfileService {
	return &AccountProfileService{
		repo:      repo,
		validator: validation.New(),
		metrics:   m,
		clock:     c,
	}
}

// FakeAccountProfile 生成一个随机的、未持久化的账户资料，带一个账户
// active 为 true 时账户视为刚登录过一次
func (s *AccountProfileService) FakeAccountProfile(active bool) *domain.AccountProfile {
	now := s.clock.Now()
	openBalance := decimal.NewFromInt(int64(randomdata.Number(1000, 100000)))

	account := &domain.Account{
		Balance:      openBalance,
		OpenBalance:  openBalance,
		CreationDate: now,
	}
	if active {
		account.LastLogin = now
		account.LoginCount = 1
	}

	return &domain.AccountProfile{
		UserID:     uuid.NewString(),
		Passwd:     randomdata.SillyName(),
		FullName:   randomdata.FullName(randomdata.RandomGender),
		Email:      randomdata.Email(),
		Address:    validation.Truncate(randomdata.Address(), validation.MaxTextLength),
		CreditCard: randomdata.StringNumber(8, ""),
		AuthToken:  uuid.NewString(),
		Accounts:   []*domain.Account{account},
	}
}

// SaveAccountProfile 校验并保存资料，返回带有已分配 ID 的资料
func (s *AccountProfileService) SaveAccountProfile(ctx context.Context, profile *domain.AccountProfile) (*domain.AccountProfile, error) {
	if profile == nil {
		return nil, fmt.Errorf("account profile is nil")
	}
	if err := s.validator.Struct(entityAccountProfile, profile); err != nil {
		s.metrics.RecordValidationFailure(entityAccountProfile)
		logger.Warn(ctx, "Account profile failed validation", "user_id", profile.UserID, "error", err)
		return nil, err
	}

	done := logger.LogDuration(ctx, "Account profile saved", "user_id", profile.UserID, "accounts", len(profile.Accounts))
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, err
	}
	s.metrics.RecordSaved(entityAccountProfile)
	done()
	return profile, nil
}

// FindAccountProfile 根据 ID 获取资料，不存在时返回 domain.ErrAccountProfileNotFound
func (s *AccountProfileService) FindAccountProfile(ctx context.Context, profileID uint) (*domain.AccountProfile, error) {
	profile, err := s.repo.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("account profile %d: %w", profileID, domain.ErrAccountProfileNotFound)
	}
	return profile, nil
}

// FindByUserID 根据 UserID 获取资料
func (s *AccountProfileService) FindByUserID(ctx context.Context, userID string) (*domain.AccountProfile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("account profile %q: %w", userID, domain.ErrAccountProfileNotFound)
	}
	return profile, nil
}
