package models

import "github.com/shopspring/decimal"

// Vendor: supplier of materials or services, optionally extended credit
type Vendor struct {
	Base
	Name          string              `gorm:"size:200;not null"`
	ContactPerson string              `gorm:"size:200"`
	Phone         string              `gorm:"size:50"`
	Email         string              `gorm:"size:200"`
	Address       string              `gorm:"size:500"`
	VendorType    string              `gorm:"size:100"` // material, equipment, service...
	CreditBalance decimal.NullDecimal `gorm:"type:numeric(14,2)"`
}
