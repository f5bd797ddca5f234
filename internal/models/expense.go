package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense: a cost incurred against a site, attributed to a vendor
type Expense struct {
	Base
	SiteID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Site         *Site
	VendorID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Vendor       *Vendor
	Description  string              `gorm:"size:500;not null"`
	Amount       decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	ExpenseDate  time.Time           `gorm:"type:date;index;not null"`
	Category     string              `gorm:"size:100"`
	ReceiptURL   string              `gorm:"size:1000"`
	Notes        string              `gorm:"size:1000"`
	IsCredit     bool                `gorm:"not null;default:false"`
	CreditAmount decimal.NullDecimal `gorm:"type:numeric(14,2)"`
}

func (e Expense) GetAmount() decimal.Decimal { return e.Amount }

// EffectiveCreditAmount is the amount owed to the vendor for a credit
// expense. An unset or zero credit_amount means the whole amount is on
// credit. Non-credit expenses owe nothing. The value is never stored.
func (e Expense) EffectiveCreditAmount() decimal.Decimal {
	if !e.IsCredit {
		return decimal.Zero
	}
	if e.CreditAmount.Valid && !e.CreditAmount.Decimal.IsZero() {
		return e.CreditAmount.Decimal
	}
	return e.Amount
}
