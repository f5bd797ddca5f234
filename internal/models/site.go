package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SiteStatus string

const (
	SiteStatusActive    SiteStatus = "active"
	SiteStatusCompleted SiteStatus = "completed"
	SiteStatusPaused    SiteStatus = "paused"
)

func (s SiteStatus) Valid() bool {
	switch s {
	case SiteStatusActive, SiteStatusCompleted, SiteStatusPaused:
		return true
	}
	return false
}

// Site: a construction project
type Site struct {
	Base
	Name        string              `gorm:"size:200;not null"`
	Location    string              `gorm:"size:255"`
	Description string              `gorm:"size:1000"`
	StartDate   *time.Time          `gorm:"type:date"`
	EndDate     *time.Time          `gorm:"type:date"`
	Budget      decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Status      SiteStatus          `gorm:"size:20;not null;default:active;index"`
}
