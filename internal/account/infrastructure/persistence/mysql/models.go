package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/nanotrader/internal/account/domain"
)

// AccountProfileModel 账户资料表映射
type AccountProfileModel struct {
	ProfileID  uint           `gorm:"column:profileid;primaryKey;autoIncrement"`
	UserID     string         `gorm:"column:userid;type:varchar(250);uniqueIndex;not null"`
	Passwd     string         `gorm:"column:passwd;type:varchar(250)"`
	FullName   string         `gorm:"column:fullname;type:varchar(250)"`
	Email      string         `gorm:"column:email;type:varchar(250)"`
	Address    string         `gorm:"column:address;type:varchar(250)"`
	CreditCard string         `gorm:"column:creditcard;type:varchar(250)"`
	AuthToken  string         `gorm:"column:authtoken;type:varchar(250)"`
	Accounts   []AccountModel `gorm:"foreignKey:ProfileID;references:ProfileID"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

// TableName 指定表名
func (AccountProfileModel) TableName() string { return "accountprofile" }

// AccountModel 账户表映射
type AccountModel struct {
	AccountID    uint            `gorm:"column:accountid;primaryKey;autoIncrement"`
	ProfileID    uint            `gorm:"column:profile_profileid;index;not null"`
	Balance      decimal.Decimal `gorm:"column:balance;type:decimal(14,2)"`
	OpenBalance  decimal.Decimal `gorm:"column:openbalance;type:decimal(14,2)"`
	CreationDate time.Time       `gorm:"column:creationdate"`
	LastLogin    time.Time       `gorm:"column:lastlogin"`
	LoginCount   int             `gorm:"column:logincount;not null"`
	LogoutCount  int             `gorm:"column:logoutcount;not null"`
}

// TableName 指定表名
func (AccountModel) TableName() string { return "account" }

func toProfileModel(p *domain.AccountProfile) *AccountProfileModel {
	m := &AccountProfileModel{
		ProfileID:  p.ProfileID,
		UserID:     p.UserID,
		Passwd:     p.Passwd,
		FullName:   p.FullName,
		Email:      p.Email,
		Address:    p.Address,
		CreditCard: p.CreditCard,
		AuthToken:  p.AuthToken,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Accounts:   make([]AccountModel, len(p.Accounts)),
	}
	for i, a := range p.Accounts {
		m.Accounts[i] = AccountModel{
			AccountID:    a.AccountID,
			ProfileID:    p.ProfileID,
			Balance:      a.Balance,
			OpenBalance:  a.OpenBalance,
			CreationDate: a.CreationDate,
			LastLogin:    a.LastLogin,
			LoginCount:   a.LoginCount,
			LogoutCount:  a.LogoutCount,
		}
	}
	return m
}

func toProfile(m *AccountProfileModel) *domain.AccountProfile {
	p := &domain.AccountProfile{
		ProfileID:  m.ProfileID,
		UserID:     m.UserID,
		Passwd:     m.Passwd,
		FullName:   m.FullName,
		Email:      m.Email,
		Address:    m.Address,
		CreditCard: m.CreditCard,
		AuthToken:  m.AuthToken,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Accounts:   make([]*domain.Account, len(m.Accounts)),
	}
	for i := range m.Accounts {
		a := m.Accounts[i]
		p.Accounts[i] = &domain.Account{
			AccountID:    a.AccountID,
			ProfileID:    a.ProfileID,
			Balance:      a.Balance,
			OpenBalance:  a.OpenBalance,
			CreationDate: a.CreationDate,
			LastLogin:    a.LastLogin,
			LoginCount:   a.LoginCount,
			LogoutCount:  a.LogoutCount,
		}
	}
	return p
}
