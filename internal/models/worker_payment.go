package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkerPayment: a disbursement to a worker for days worked on a site
type WorkerPayment struct {
	Base
	SiteID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Site        *Site
	WorkerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Worker      *Worker
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentDate time.Time       `gorm:"type:date;index;not null"`
	DaysWorked  *int
	Description string `gorm:"size:500"`
	Notes       string `gorm:"size:1000"`
}

func (p WorkerPayment) GetAmount() decimal.Decimal { return p.Amount }

// Days returns days_worked, treating an unset value as 0.
func (p WorkerPayment) Days() int {
	if p.DaysWorked == nil {
		return 0
	}
	return *p.DaysWorked
}
