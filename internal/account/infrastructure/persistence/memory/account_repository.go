// Package memory 账户资料仓储的内存实现
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wyfcoding/nanotrader/internal/account/domain"
)

var _ domain.AccountProfileRepository = (*AccountProfileRepository)(nil)

// AccountProfileRepository 并发安全，ID 从 1 开始递增
type AccountProfileRepository struct {
	mu            sync.RWMutex
	profiles      map[uint]*domain.AccountProfile
	nextProfileID uint
	nextAccountID uint
}

// NewAccountProfileRepository 创建空仓储
func NewAccountProfileRepository() *AccountProfileRepository {
	return &AccountProfileRepository{
		profiles:      make(map[uint]*domain.AccountProfile),
		nextProfileID: 1,
		nextAccountID: 1,
	}
}

func (r *AccountProfileRepository) Save(_ context.Context, profile *domain.AccountProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if profile.ProfileID == 0 {
		profile.ProfileID = r.nextProfileID
		r.nextProfileID++
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	for _, a := range profile.Accounts {
		if a.AccountID == 0 {
			a.AccountID = r.nextAccountID
			r.nextAccountID++
		}
		a.ProfileID = profile.ProfileID
	}

	r.profiles[profile.ProfileID] = profile.Clone()
	return nil
}

func (r *AccountProfileRepository) Get(_ context.Context, profileID uint) (*domain.AccountProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *AccountProfileRepository) GetByUserID(_ context.Context, userID string) (*domain.AccountProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			return p.Clone(), nil
		}
	}
	return nil, nil
}
