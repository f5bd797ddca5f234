package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SiteIncome: revenue recorded against a site
type SiteIncome struct {
	Base
	SiteID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Site        *Site
	Description string          `gorm:"size:500;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IncomeDate  time.Time       `gorm:"type:date;index;not null"`
	Source      string          `gorm:"size:200"`
	Notes       string          `gorm:"size:1000"`
}

// TableName keeps the table name singular, matching the existing schema.
func (SiteIncome) TableName() string { return "site_income" }

func (i SiteIncome) GetAmount() decimal.Decimal { return i.Amount }
