package models

import "github.com/shopspring/decimal"

type Worker struct {
	Base
	Name      string              `gorm:"size:200;not null"`
	Phone     string              `gorm:"size:50"`
	Email     string              `gorm:"size:200"`
	Address   string              `gorm:"size:500"`
	SkillType string              `gorm:"size:100"`
	DailyRate decimal.NullDecimal `gorm:"type:numeric(14,2)"`
}
