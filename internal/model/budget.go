package model

import (
	"time"

	"github.com/google/uuid"
)

// Budget is the derived breakdown of a project's bid amount. It is computed
// once at project creation and never mutated afterwards.
type Budget struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ExpectedBidAmount int64
	VatExcluded       int64
	AgencyFee         int64
	CompanyMargin     int64
	InternalLabor     int64
	InternalLaborRate float64 // percent, e.g. 2.25 for a 30-day window
	AvailableBudget   int64
	CreatedAt         time.Time
}

func (Budget) TableName() string { return "budgets" }
