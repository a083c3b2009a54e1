// Package domain 账户服务的领域模型
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrAccountProfileNotFound 账户资料不存在
var ErrAccountProfileNotFound = errors.New("account profile not found")

// Account 交易账户
// 隶属于一个 AccountProfile，AccountID 由持久层分配
type Account struct {
	AccountID uint `json:"accountid"`
	ProfileID uint `json:"profileid"`
	// 当前余额
	Balance decimal.Decimal `json:"balance" validate:"decmin=0,decmax=999999999999.99"`
	// 开户余额
	OpenBalance  decimal.Decimal `json:"openbalance" validate:"decmin=0,decmax=999999999999.99"`
	CreationDate time.Time       `json:"creationdate" validate:"required"`
	LastLogin    time.Time       `json:"lastlogin"`
	LoginCount   int             `json:"logincount" validate:"min=0"`
	LogoutCount  int             `json:"logoutcount" validate:"min=0"`
}

// AccountProfile 用户资料，至少拥有一个账户
type AccountProfile struct {
	ProfileID  uint       `json:"profileid"`
	UserID     string     `json:"userid" validate:"required,max=250"`
	Passwd     string     `json:"-" validate:"required,max=250"`
	FullName   string     `json:"fullname" validate:"required,max=250"`
	Email      string     `json:"email" validate:"required,max=250"`
	Address    string     `json:"address" validate:"max=250"`
	CreditCard string     `json:"creditcard" validate:"max=250"`
	AuthToken  string     `json:"authtoken" validate:"max=250"`
	Accounts   []*Account `json:"accounts" validate:"min=1,dive"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PrimaryAccount 返回第一个账户，没有账户时返回 nil
func (p *AccountProfile) PrimaryAccount() *Account {
	if len(p.Accounts) == 0 {
		return nil
	}
	return p.Accounts[0]
}

// Clone 深拷贝资料及其账户
func (p *AccountProfile) Clone() *AccountProfile {
	c := *p
	c.Accounts = make([]*Account, len(p.Accounts))
	for i, a := range p.Accounts {
		acc := *a
		c.Accounts[i] = &acc
	}
	return &c
}
