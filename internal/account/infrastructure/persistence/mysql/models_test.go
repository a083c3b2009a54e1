package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/wyfcoding/nanotrader/internal/account/domain"
)

func TestProfileModelMapping(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	profile := &domain.AccountProfile{
		ProfileID: 4,
		UserID:    "user-4",
		Passwd:    "secret",
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		Accounts: []*domain.Account{
			{AccountID: 9, ProfileID: 4, Balance: decimal.NewFromInt(500), OpenBalance: decimal.NewFromInt(500), CreationDate: now, LastLogin: now, LoginCount: 1},
		},
	}

	model := toProfileModel(profile)
	assert.Equal(t, "accountprofile", model.TableName())
	assert.Equal(t, "account", model.Accounts[0].TableName())
	assert.EqualValues(t, 4, model.Accounts[0].ProfileID)
	assert.Equal(t, profile, toProfile(model))
}
