package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashAccountType represents the kind of cash pool.
type CashAccountType string

const (
	CashAccountBank          CashAccountType = "BANK"
	CashAccountPettyCash     CashAccountType = "PETTY_CASH"
	CashAccountDigitalWallet CashAccountType = "DIGITAL_WALLET"
)

// IsValid reports whether the account type is known.
func (t CashAccountType) IsValid() bool {
	return t == CashAccountBank || t == CashAccountPettyCash || t == CashAccountDigitalWallet
}

// LedgerCurrency is the single currency every account is held in.
const LedgerCurrency = "INR"

// CashAccount is a named cash pool. The opening balances of active accounts
// form the initial balance of the liquid cash computation.
type CashAccount struct {
	ID               uuid.UUID
	Name             string
	Type             CashAccountType
	Currency         string
	OpeningBalance   decimal.Decimal
	IsActive         bool
	LastReconciledAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCashAccount creates an active account in the ledger currency.
func NewCashAccount(name string, accountType CashAccountType, openingBalance decimal.Decimal, now time.Time) *CashAccount {
	return &CashAccount{
		ID:             uuid.New(),
		Name:           name,
		Type:           accountType,
		Currency:       LedgerCurrency,
		OpeningBalance: openingBalance,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TotalOpeningBalance sums the opening balances of active accounts.
func TotalOpeningBalance(accounts []*CashAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.IsActive {
			total = total.Add(a.OpeningBalance)
		}
	}
	return total
}
